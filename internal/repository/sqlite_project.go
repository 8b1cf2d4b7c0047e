package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, client_id, name, description, budget, status, start_date, end_date, created_at, updated_at`

func projectArgs(p *domain.Project) []any {
	return []any{
		p.ID,
		p.ClientID,
		p.Name,
		nullIfEmpty(p.Description),
		nullableMoney(p.Budget),
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.CreateBatch(ctx, []*domain.Project{p})
}

// CreateBatch issues a single multi-row INSERT, so the batch is applied
// entirely or not at all.
func (r *SQLiteProjectRepo) CreateBatch(ctx context.Context, ps []*domain.Project) error {
	if len(ps) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(ps))
	args := make([]any, 0, len(ps)*10)
	for _, p := range ps {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, projectArgs(p)...)
	}
	query := `INSERT INTO projects (` + projectColumns + `) VALUES ` + strings.Join(placeholders, ", ")
	_, err := r.db.ExecContext(ctx, query, args...)
	return storeErr("insert", "projects", err)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("projects", id)
	}
	if err != nil {
		return nil, storeErr("select", "projects", err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE client_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, storeErr("select", "projects", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, storeErr("select", "projects", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("select", "projects", fmt.Errorf("iterating projects: %w", err))
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) UpdateNameBudget(ctx context.Context, id, name string, budget *domain.Money) error {
	query := `UPDATE projects SET name = ?, budget = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, name, nullableMoney(budget), nowUTC(), id)
	if err != nil {
		return storeErr("update", "projects", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &StoreError{Op: "update", Table: "projects", Err: fmt.Errorf("project %q %w", id, ErrNotFound)}
	}
	return nil
}

// Delete removes the project and, through ON DELETE CASCADE, its tasks.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return storeErr("delete", "projects", err)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var description, startDate, endDate sql.NullString
	var budget sql.NullInt64

	err := row.Scan(
		&p.ID, &p.ClientID, &p.Name, &description, &budget,
		&statusStr, &startDate, &endDate,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	p.Budget = moneyFromNull(budget)
	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.EndDate = parseNullableTime(endDate, dateLayout)

	if p.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
