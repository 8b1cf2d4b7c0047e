package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewGormRepos builds repositories over a GORM handle, which may itself be
// a transaction.
func NewGormRepos(gdb *gorm.DB) Repos {
	return Repos{
		Clients:  &GormClientRepo{db: gdb},
		Projects: &GormProjectRepo{db: gdb},
		Tasks:    &GormTaskRepo{db: gdb},
		Overview: &GormOverviewRepo{db: gdb},
	}
}

// GormTxRunner implements TxRunner with GORM transactions.
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner creates a TxRunner backed by gdb.
func NewGormTxRunner(gdb *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: gdb}
}

func (t *GormTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormRepos(tx))
	})
}

// isUUID reports whether id can be compared against a UUID column.
// PostgreSQL rejects anything else with a cast error, so such ids are
// treated as matching no row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func gormGetErr(table, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(table, id)
	}
	return storeErr("select", table, err)
}

// GormClientRepo implements ClientRepo on PostgreSQL.
type GormClientRepo struct {
	db *gorm.DB
}

func (r *GormClientRepo) Create(ctx context.Context, c *domain.Client) error {
	row := toClientRow(c)
	return storeErr("insert", "clients", r.db.WithContext(ctx).Create(&row).Error)
}

func (r *GormClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if !isUUID(id) {
		return nil, notFound("clients", id)
	}
	var row clientRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, gormGetErr("clients", id, err)
	}
	return row.toDomain(), nil
}

func (r *GormClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	var rows []clientRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, storeErr("select", "clients", err)
	}
	out := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormClientRepo) Update(ctx context.Context, c *domain.Client) error {
	if !isUUID(c.ID) {
		return &StoreError{Op: "update", Table: "clients", Err: fmt.Errorf("client %q %w", c.ID, ErrNotFound)}
	}
	row := toClientRow(c)
	res := r.db.WithContext(ctx).Model(&clientRow{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":       row.Name,
		"email":      row.Email,
		"phone":      row.Phone,
		"website":    row.Website,
		"status":     row.Status,
		"notes":      row.Notes,
		"updated_at": row.UpdatedAt,
	})
	if res.Error != nil {
		return storeErr("update", "clients", res.Error)
	}
	if res.RowsAffected == 0 {
		return &StoreError{Op: "update", Table: "clients", Err: fmt.Errorf("client %q %w", c.ID, ErrNotFound)}
	}
	return nil
}

func (r *GormClientRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	return storeErr("delete", "clients", r.db.WithContext(ctx).Where("id = ?", id).Delete(&clientRow{}).Error)
}

// GormProjectRepo implements ProjectRepo on PostgreSQL.
type GormProjectRepo struct {
	db *gorm.DB
}

func (r *GormProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.CreateBatch(ctx, []*domain.Project{p})
}

func (r *GormProjectRepo) CreateBatch(ctx context.Context, ps []*domain.Project) error {
	if len(ps) == 0 {
		return nil
	}
	rows := projectBatchRows(ps)
	return storeErr("insert", "projects", r.db.WithContext(ctx).Create(&rows).Error)
}

// projectBatchRows maps a batch to rows whose created_at strictly increases
// in slice order, one microsecond apart at least, so listing by created_at
// returns the batch in the order it was entered.
func projectBatchRows(ps []*domain.Project) []projectRow {
	rows := make([]projectRow, 0, len(ps))
	for i, p := range ps {
		row := toProjectRow(p)
		if i > 0 {
			prev := rows[i-1].CreatedAt
			if row.CreatedAt.Sub(prev) < time.Microsecond {
				row.CreatedAt = prev.Add(time.Microsecond)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *GormProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if !isUUID(id) {
		return nil, notFound("projects", id)
	}
	var row projectRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, gormGetErr("projects", id, err)
	}
	return row.toDomain(), nil
}

func (r *GormProjectRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error) {
	if !isUUID(clientID) {
		return []*domain.Project{}, nil
	}
	var rows []projectRow
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, storeErr("select", "projects", err)
	}
	out := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormProjectRepo) UpdateNameBudget(ctx context.Context, id, name string, budget *domain.Money) error {
	if !isUUID(id) {
		return &StoreError{Op: "update", Table: "projects", Err: fmt.Errorf("project %q %w", id, ErrNotFound)}
	}
	var b *int64
	if budget != nil {
		v := int64(*budget)
		b = &v
	}
	res := r.db.WithContext(ctx).Model(&projectRow{}).Where("id = ?", id).Updates(map[string]any{
		"name":       name,
		"budget":     b,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return storeErr("update", "projects", res.Error)
	}
	if res.RowsAffected == 0 {
		return &StoreError{Op: "update", Table: "projects", Err: fmt.Errorf("project %q %w", id, ErrNotFound)}
	}
	return nil
}

func (r *GormProjectRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	return storeErr("delete", "projects", r.db.WithContext(ctx).Where("id = ?", id).Delete(&projectRow{}).Error)
}

// GormTaskRepo implements TaskRepo on PostgreSQL.
type GormTaskRepo struct {
	db *gorm.DB
}

func (r *GormTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	row := toTaskRow(t)
	return storeErr("insert", "tasks", r.db.WithContext(ctx).Create(&row).Error)
}

func (r *GormTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if !isUUID(id) {
		return nil, notFound("tasks", id)
	}
	var row taskRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, gormGetErr("tasks", id, err)
	}
	return row.toDomain(), nil
}

func (r *GormTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if !isUUID(projectID) {
		return []*domain.Task{}, nil
	}
	var rows []taskRow
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, storeErr("select", "tasks", err)
	}
	out := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormTaskRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	return storeErr("delete", "tasks", r.db.WithContext(ctx).Where("id = ?", id).Delete(&taskRow{}).Error)
}

// GormOverviewRepo reads the client_overview view on PostgreSQL.
type GormOverviewRepo struct {
	db *gorm.DB
}

func (r *GormOverviewRepo) List(ctx context.Context) ([]*domain.ClientOverview, error) {
	var rows []overviewRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, storeErr("select", "client_overview", err)
	}
	out := make([]*domain.ClientOverview, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GormOverviewRepo) GetByID(ctx context.Context, clientID string) (*domain.ClientOverview, error) {
	if !isUUID(clientID) {
		return nil, notFound("clients", clientID)
	}
	var row overviewRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", clientID).Error; err != nil {
		return nil, gormGetErr("clients", clientID, err)
	}
	return row.toDomain(), nil
}
