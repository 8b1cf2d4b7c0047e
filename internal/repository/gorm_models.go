package repository

import (
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// Row types mirror the PostgreSQL schema for GORM. Nullable columns are
// pointers; conversion to domain types happens at the repository edge.

type clientRow struct {
	ID        string `gorm:"column:id;primaryKey"`
	Name      string
	Email     *string
	Phone     *string
	Website   *string
	Status    string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (clientRow) TableName() string { return "clients" }

type projectRow struct {
	ID          string `gorm:"column:id;primaryKey"`
	ClientID    string
	Name        string
	Description *string
	Budget      *int64
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (projectRow) TableName() string { return "projects" }

type taskRow struct {
	ID          string `gorm:"column:id;primaryKey"`
	ProjectID   string
	Name        string
	Description *string
	Status      string
	Priority    string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRow) TableName() string { return "tasks" }

type overviewRow struct {
	clientRow    `gorm:"embedded"`
	ProjectCount int
	TotalBudget  int64
}

func (overviewRow) TableName() string { return "client_overview" }

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toClientRow(c *domain.Client) clientRow {
	return clientRow{
		ID:        c.ID,
		Name:      c.Name,
		Email:     strPtr(c.Email),
		Phone:     strPtr(c.Phone),
		Website:   strPtr(c.Website),
		Status:    string(c.Status),
		Notes:     strPtr(c.Notes),
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (r clientRow) toDomain() *domain.Client {
	return &domain.Client{
		ID:        r.ID,
		Name:      r.Name,
		Email:     strVal(r.Email),
		Phone:     strVal(r.Phone),
		Website:   strVal(r.Website),
		Status:    domain.ClientStatus(r.Status),
		Notes:     strVal(r.Notes),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toProjectRow(p *domain.Project) projectRow {
	var budget *int64
	if p.Budget != nil {
		v := int64(*p.Budget)
		budget = &v
	}
	return projectRow{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: strPtr(p.Description),
		Budget:      budget,
		Status:      string(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (r projectRow) toDomain() *domain.Project {
	var budget *domain.Money
	if r.Budget != nil {
		m := domain.Money(*r.Budget)
		budget = &m
	}
	return &domain.Project{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Name:        r.Name,
		Description: strVal(r.Description),
		Budget:      budget,
		Status:      domain.ProjectStatus(r.Status),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toTaskRow(t *domain.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Name:        t.Name,
		Description: strPtr(t.Description),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func (r taskRow) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Description: strVal(r.Description),
		Status:      domain.TaskStatus(r.Status),
		Priority:    domain.TaskPriority(r.Priority),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r overviewRow) toDomain() *domain.ClientOverview {
	return &domain.ClientOverview{
		Client:       *r.clientRow.toDomain(),
		ProjectCount: r.ProjectCount,
		TotalBudget:  domain.Money(r.TotalBudget),
	}
}
