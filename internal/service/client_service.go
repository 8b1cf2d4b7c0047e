package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
)

type clientService struct {
	clients  repository.ClientRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewClientService(clients repository.ClientRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) ClientService {
	return &clientService{
		clients:  clients,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// Delete removes the client; the store cascades to its projects and tasks.
func (s *clientService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-client",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"client_id": id},
		})
	}()
	if err = s.clients.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

func (s *clientService) DeleteProject(ctx context.Context, projectID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": projectID},
		})
	}()
	if err = s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (s *clientService) ListProjects(ctx context.Context, clientID string) ([]*domain.Project, error) {
	return s.projects.ListByClient(ctx, clientID)
}
