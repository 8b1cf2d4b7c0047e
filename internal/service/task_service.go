package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return domain.NewValidationError("name", "task name is required")
	}
	if t.ProjectID == "" {
		return domain.NewValidationError("project_id", "task needs a project")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TaskOpen
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !domain.ValidTaskStatuses[string(t.Status)] {
		return domain.NewValidationError("status", "unknown task status "+string(t.Status))
	}
	if !domain.ValidTaskPriorities[string(t.Priority)] {
		return domain.NewValidationError("priority", "unknown task priority "+string(t.Priority))
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
