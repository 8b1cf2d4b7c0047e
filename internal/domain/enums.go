package domain

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// ValidClientStatuses is the canonical set of accepted client status strings.
var ValidClientStatuses = map[string]bool{
	"active": true, "inactive": true,
}

type ProjectStatus string

const (
	ProjectCompleted    ProjectStatus = "completed"
	ProjectNotCompleted ProjectStatus = "not_completed"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"completed": true, "not_completed": true,
}

type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskOnHold     TaskStatus = "on_hold"
	TaskCompleted  TaskStatus = "completed"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"open": true, "in_progress": true, "on_hold": true, "completed": true,
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ValidTaskPriorities is the canonical set of accepted task priority strings.
var ValidTaskPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}
