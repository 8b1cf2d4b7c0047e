package draft

import "github.com/alexanderramin/clientdesk/internal/domain"

// EditDraft is the state of the edit-client form. Rows loaded from the store
// carry their project ID.
type EditDraft struct {
	ClientID string
	Client   domain.ClientFields
	projects []ProjectDraft
	staged   []string
}

// NewEditDraft loads a client and its projects into a form. A NULL budget
// is shown as "0".
func NewEditDraft(c *domain.Client, projects []*domain.Project) EditDraft {
	rows := make([]ProjectDraft, 0, len(projects))
	for _, p := range projects {
		budget := "0"
		if p.Budget != nil {
			budget = p.Budget.String()
		}
		rows = append(rows, ProjectDraft{ID: p.ID, Name: p.Name, Budget: budget})
	}
	return EditDraft{
		ClientID: c.ID,
		Client:   c.Fields(),
		projects: rows,
	}
}

// Projects returns a copy of the project rows.
func (d EditDraft) Projects() []ProjectDraft {
	return cloneProjects(d.projects)
}

// Project returns row i.
func (d EditDraft) Project(i int) (ProjectDraft, bool) {
	if !inRange(d.projects, i) {
		return ProjectDraft{}, false
	}
	return d.projects[i], true
}

// StagedDeletes returns the IDs of stored projects removed from the form but
// not yet deleted.
func (d EditDraft) StagedDeletes() []string {
	out := make([]string, len(d.staged))
	copy(out, d.staged)
	return out
}

func (d EditDraft) WithClient(f domain.ClientFields) EditDraft {
	d.Client = f
	return d
}

func (d EditDraft) AddProject() EditDraft {
	d.projects = append(cloneProjects(d.projects), ProjectDraft{})
	return d
}

// RemoveProject drops row i from the form. Stored projects are not touched.
func (d EditDraft) RemoveProject(i int) EditDraft {
	if !inRange(d.projects, i) {
		return d
	}
	ps := make([]ProjectDraft, 0, len(d.projects)-1)
	ps = append(ps, d.projects[:i]...)
	d.projects = append(ps, d.projects[i+1:]...)
	return d
}

// StageDelete drops row i and, when it is a stored project, records its ID
// for deletion on submit.
func (d EditDraft) StageDelete(i int) EditDraft {
	p, ok := d.Project(i)
	if !ok {
		return d
	}
	out := d.RemoveProject(i)
	if !p.IsNew() {
		out.staged = append(d.StagedDeletes(), p.ID)
	}
	return out
}

func (d EditDraft) SetProjectName(i int, name string) EditDraft {
	if !inRange(d.projects, i) {
		return d
	}
	d.projects = cloneProjects(d.projects)
	d.projects[i].Name = name
	return d
}

func (d EditDraft) SetProjectBudget(i int, budget string) EditDraft {
	if !inRange(d.projects, i) {
		return d
	}
	d.projects = cloneProjects(d.projects)
	d.projects[i].Budget = budget
	return d
}

// ValidProjects returns the rows that submit will write, in form order.
func (d EditDraft) ValidProjects() []ProjectDraft {
	return validOnly(d.projects)
}
