package domain

import "time"

// Task is a unit of work owned by a Project. No client workflow edits tasks;
// they exist so that project deletion has something to cascade to.
type Task struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
