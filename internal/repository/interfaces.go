package repository

import (
	"context"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	// CreateBatch inserts all projects in one statement.
	CreateBatch(ctx context.Context, ps []*domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	UpdateNameBudget(ctx context.Context, id, name string, budget *domain.Money) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// OverviewRepo reads the client_overview view. Aggregates are computed by
// the store on every call.
type OverviewRepo interface {
	List(ctx context.Context) ([]*domain.ClientOverview, error)
	GetByID(ctx context.Context, clientID string) (*domain.ClientOverview, error)
}

// Repos bundles repositories that share one connection or transaction.
type Repos struct {
	Clients  ClientRepo
	Projects ProjectRepo
	Tasks    TaskRepo
	Overview OverviewRepo
}

// TxRunner runs fn against transaction-scoped repositories. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
