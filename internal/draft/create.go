package draft

import "github.com/alexanderramin/clientdesk/internal/domain"

// CreateDraft is the state of the new-client form.
type CreateDraft struct {
	Client   domain.ClientFields
	projects []ProjectDraft
}

// NewCreateDraft returns an empty form: active status and one blank project row.
func NewCreateDraft() CreateDraft {
	return CreateDraft{
		Client:   domain.ClientFields{Status: domain.ClientActive},
		projects: []ProjectDraft{{}},
	}
}

// Projects returns a copy of the project rows.
func (d CreateDraft) Projects() []ProjectDraft {
	return cloneProjects(d.projects)
}

func (d CreateDraft) WithClient(f domain.ClientFields) CreateDraft {
	d.Client = f
	return d
}

func (d CreateDraft) AddProject() CreateDraft {
	d.projects = append(cloneProjects(d.projects), ProjectDraft{})
	return d
}

// RemoveProject drops row i. The last remaining row is never removed.
func (d CreateDraft) RemoveProject(i int) CreateDraft {
	if len(d.projects) <= 1 || !inRange(d.projects, i) {
		return d
	}
	ps := make([]ProjectDraft, 0, len(d.projects)-1)
	ps = append(ps, d.projects[:i]...)
	d.projects = append(ps, d.projects[i+1:]...)
	return d
}

func (d CreateDraft) SetProjectName(i int, name string) CreateDraft {
	if !inRange(d.projects, i) {
		return d
	}
	d.projects = cloneProjects(d.projects)
	d.projects[i].Name = name
	return d
}

func (d CreateDraft) SetProjectBudget(i int, budget string) CreateDraft {
	if !inRange(d.projects, i) {
		return d
	}
	d.projects = cloneProjects(d.projects)
	d.projects[i].Budget = budget
	return d
}

// ValidProjects returns the rows that would be persisted, in form order.
func (d CreateDraft) ValidProjects() []ProjectDraft {
	return validOnly(d.projects)
}
