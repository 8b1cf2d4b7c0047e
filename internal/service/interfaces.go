package service

import (
	"context"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/draft"
	"github.com/alexanderramin/clientdesk/internal/listing"
)

type OverviewService interface {
	List(ctx context.Context) ([]*domain.ClientOverview, error)
	Summary(ctx context.Context) (listing.Summary, error)
}

type ClientService interface {
	Get(ctx context.Context, id string) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	// DeleteProject removes one project and its tasks.
	DeleteProject(ctx context.Context, projectID string) error
	ListProjects(ctx context.Context, clientID string) ([]*domain.Project, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// CreateResult holds what the create workflow wrote.
type CreateResult struct {
	Client   *domain.Client
	Projects []*domain.Project
}

// ClientWorkflow drives the create and edit forms against the store.
type ClientWorkflow interface {
	// Create persists a new client and its valid project rows. When the
	// client row was written but a later step failed, the result is
	// returned together with the error.
	Create(ctx context.Context, d draft.CreateDraft) (*CreateResult, error)
	OpenEdit(ctx context.Context, clientID string) (draft.EditDraft, error)
	// RemoveProject removes row i from the form. A stored project is deleted
	// right away unless project deletes are staged.
	RemoveProject(ctx context.Context, d draft.EditDraft, i int) (draft.EditDraft, error)
	SubmitEdit(ctx context.Context, d draft.EditDraft) (*domain.Client, error)
}

// WorkflowOptions select between the default write ordering and the
// stricter variants.
type WorkflowOptions struct {
	// ValidateBeforeWrite checks project rows before any write and groups
	// the writes of one submit in a transaction.
	ValidateBeforeWrite bool
	// StageProjectDeletes defers deletion of removed projects to submit.
	StageProjectDeletes bool
}
