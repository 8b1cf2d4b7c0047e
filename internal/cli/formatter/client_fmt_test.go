package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatClientDetail(t *testing.T) {
	budget := domain.Money(50000)
	c := &domain.Client{
		ID:        "c1",
		Name:      "Acme",
		Status:    domain.ClientInactive,
		Notes:     "Pays late",
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local),
	}
	projects := []*domain.Project{
		{ID: "p1", ClientID: "c1", Name: "Website", Budget: &budget, Status: domain.ProjectNotCompleted},
		{ID: "p2", ClientID: "c1", Name: "Audit", Status: domain.ProjectCompleted},
	}

	out := stripANSI(FormatClientDetail(c, projects))
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Inactive")
	assert.Contains(t, out, "Pays late")
	assert.Contains(t, out, "Jun 1, 2024")
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "$500.00")
	assert.Contains(t, out, "Not completed")
	assert.Contains(t, out, "Completed")
}

func TestFormatProjects_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatProjects(nil)), "No projects.")
}

func TestFormatTasks(t *testing.T) {
	tasks := []*domain.Task{{ID: "t1", Name: "Draft copy", Status: domain.TaskInProgress, Priority: domain.PriorityHigh}}
	out := stripANSI(FormatTasks(tasks))
	assert.Contains(t, out, "Draft copy")
	assert.Contains(t, out, "In progress")
	assert.Contains(t, out, "High")
	assert.Contains(t, stripANSI(FormatTasks(nil)), "No tasks.")
}
