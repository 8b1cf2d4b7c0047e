package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/draft"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/google/uuid"
)

// ErrNoValidProjects is the validation failure for a create form without a
// complete project row.
var ErrNoValidProjects = domain.NewValidationError("projects", "At least one project with name and budget is required")

type clientWorkflow struct {
	repos    repository.Repos
	tx       repository.TxRunner
	opts     WorkflowOptions
	observer UseCaseObserver
}

// NewClientWorkflow creates the form workflow. tx may be nil; strict create
// then falls back to deleting the client when its projects fail.
func NewClientWorkflow(
	repos repository.Repos,
	tx repository.TxRunner,
	opts WorkflowOptions,
	observers ...UseCaseObserver,
) ClientWorkflow {
	return &clientWorkflow{
		repos:    repos,
		tx:       tx,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (w *clientWorkflow) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	w.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func newClient(f domain.ClientFields, now time.Time) *domain.Client {
	c := &domain.Client{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	c.Apply(f)
	return c
}

func newProject(clientID string, p draft.ProjectDraft, now time.Time) (*domain.Project, error) {
	budget, err := p.Money()
	if err != nil {
		return nil, domain.NewValidationError("budget", err.Error())
	}
	return &domain.Project{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Name:      p.Name,
		Budget:    &budget,
		Status:    domain.ProjectNotCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func newProjects(clientID string, rows []draft.ProjectDraft, now time.Time) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(rows))
	for _, r := range rows {
		p, err := newProject(clientID, r, now)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (w *clientWorkflow) Create(ctx context.Context, d draft.CreateDraft) (res *CreateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"strict": w.opts.ValidateBeforeWrite}
	defer func() {
		if res != nil && res.Client != nil {
			fields["client_id"] = res.Client.ID
			fields["project_count"] = len(res.Projects)
		}
		w.observe(ctx, "create-client", startedAt, fields, err)
	}()

	if err = d.Client.Validate(); err != nil {
		return nil, err
	}
	if w.opts.ValidateBeforeWrite {
		return w.createStrict(ctx, d, startedAt)
	}

	client := newClient(d.Client, startedAt)
	if err = w.repos.Clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	res = &CreateResult{Client: client}

	// The client row is already committed; a failure from here on leaves it
	// in place.
	valid := d.ValidProjects()
	if len(valid) == 0 {
		return res, ErrNoValidProjects
	}
	projects, err := newProjects(client.ID, valid, startedAt)
	if err != nil {
		return res, err
	}
	if err = w.repos.Projects.CreateBatch(ctx, projects); err != nil {
		return res, fmt.Errorf("creating projects: %w", err)
	}
	res.Projects = projects
	return res, nil
}

func (w *clientWorkflow) createStrict(ctx context.Context, d draft.CreateDraft, now time.Time) (*CreateResult, error) {
	valid := d.ValidProjects()
	if len(valid) == 0 {
		return nil, ErrNoValidProjects
	}
	client := newClient(d.Client, now)
	projects, err := newProjects(client.ID, valid, now)
	if err != nil {
		return nil, err
	}

	if w.tx != nil {
		err := w.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
			if err := r.Clients.Create(ctx, client); err != nil {
				return fmt.Errorf("creating client: %w", err)
			}
			if err := r.Projects.CreateBatch(ctx, projects); err != nil {
				return fmt.Errorf("creating projects: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &CreateResult{Client: client, Projects: projects}, nil
	}

	if err := w.repos.Clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	if err := w.repos.Projects.CreateBatch(ctx, projects); err != nil {
		err = fmt.Errorf("creating projects: %w", err)
		if delErr := w.repos.Clients.Delete(ctx, client.ID); delErr != nil {
			return &CreateResult{Client: client}, errors.Join(err, fmt.Errorf("removing client after failed project insert: %w", delErr))
		}
		return nil, err
	}
	return &CreateResult{Client: client, Projects: projects}, nil
}

func (w *clientWorkflow) OpenEdit(ctx context.Context, clientID string) (draft.EditDraft, error) {
	client, err := w.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return draft.EditDraft{}, fmt.Errorf("loading client: %w", err)
	}
	projects, err := w.repos.Projects.ListByClient(ctx, clientID)
	if err != nil {
		return draft.EditDraft{}, fmt.Errorf("loading projects: %w", err)
	}
	return draft.NewEditDraft(client, projects), nil
}

func (w *clientWorkflow) RemoveProject(ctx context.Context, d draft.EditDraft, i int) (out draft.EditDraft, err error) {
	p, ok := d.Project(i)
	if !ok {
		return d, domain.NewValidationError("projects", fmt.Sprintf("no project row %d", i))
	}
	if p.IsNew() {
		return d.RemoveProject(i), nil
	}
	if w.opts.StageProjectDeletes {
		return d.StageDelete(i), nil
	}

	startedAt := time.Now().UTC()
	defer func() {
		w.observe(ctx, "delete-project", startedAt, map[string]any{
			"client_id":  d.ClientID,
			"project_id": p.ID,
		}, err)
	}()
	if err = w.repos.Projects.Delete(ctx, p.ID); err != nil {
		return d, fmt.Errorf("deleting project: %w", err)
	}
	return d.RemoveProject(i), nil
}

func (w *clientWorkflow) SubmitEdit(ctx context.Context, d draft.EditDraft) (client *domain.Client, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"client_id":      d.ClientID,
		"staged_deletes": len(d.StagedDeletes()),
	}
	defer func() {
		w.observe(ctx, "edit-client", startedAt, fields, err)
	}()

	if err = d.Client.Validate(); err != nil {
		return nil, err
	}
	client = &domain.Client{ID: d.ClientID, UpdatedAt: startedAt}
	client.Apply(d.Client)

	if w.opts.ValidateBeforeWrite && w.tx != nil {
		err = w.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
			return submitEdit(ctx, r, client, d, startedAt, fields)
		})
	} else {
		err = submitEdit(ctx, w.repos, client, d, startedAt, fields)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// submitEdit writes the client, then staged deletes, then each complete
// project row in form order. It stops at the first failure.
func submitEdit(ctx context.Context, r repository.Repos, client *domain.Client, d draft.EditDraft, now time.Time, fields map[string]any) error {
	if err := r.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	for _, id := range d.StagedDeletes() {
		if err := r.Projects.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting project: %w", err)
		}
	}

	var updated, inserted int
	for _, row := range d.Projects() {
		if !row.Valid() {
			continue
		}
		budget, err := row.Money()
		if err != nil {
			return domain.NewValidationError("budget", err.Error())
		}
		if !row.IsNew() {
			if err := r.Projects.UpdateNameBudget(ctx, row.ID, row.Name, &budget); err != nil {
				return fmt.Errorf("updating project: %w", err)
			}
			updated++
			continue
		}
		p, err := newProject(client.ID, row, now)
		if err != nil {
			return err
		}
		if err := r.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		inserted++
	}
	fields["projects_updated"] = updated
	fields["projects_inserted"] = inserted
	return nil
}
