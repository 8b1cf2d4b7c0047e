package testutil

import (
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/google/uuid"
)

// Client options
type ClientOption func(*domain.Client)

func WithEmail(email string) ClientOption {
	return func(c *domain.Client) {
		c.Email = email
	}
}

func WithClientStatus(s domain.ClientStatus) ClientOption {
	return func(c *domain.Client) {
		c.Status = s
	}
}

func WithCreatedAt(t time.Time) ClientOption {
	return func(c *domain.Client) {
		c.CreatedAt = t.UTC()
		c.UpdatedAt = t.UTC()
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ClientActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

// WithBudget sets the budget in cents.
func WithBudget(cents int64) ProjectOption {
	return func(p *domain.Project) {
		m := domain.Money(cents)
		p.Budget = &m
	}
}

func WithNullBudget() ProjectOption {
	return func(p *domain.Project) {
		p.Budget = nil
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t.UTC()
		p.UpdatedAt = t.UTC()
	}
}

func NewTestProject(clientID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	zero := domain.Money(0)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Name:      name,
		Budget:    &zero,
		Status:    domain.ProjectNotCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Status:    domain.TaskOpen,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
