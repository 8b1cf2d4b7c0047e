package draft

import (
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDraft_SeedsOneBlankRow(t *testing.T) {
	d := NewCreateDraft()
	assert.Equal(t, domain.ClientActive, d.Client.Status)
	require.Len(t, d.Projects(), 1)
	assert.Empty(t, d.ValidProjects())
}

func TestCreateDraft_OperationsDoNotMutateReceiver(t *testing.T) {
	d0 := NewCreateDraft()
	d1 := d0.SetProjectName(0, "Site")
	d2 := d1.AddProject()
	d3 := d2.SetProjectBudget(1, "200")

	assert.Empty(t, d0.Projects()[0].Name)
	assert.Equal(t, "Site", d1.Projects()[0].Name)
	assert.Len(t, d1.Projects(), 1)
	assert.Len(t, d2.Projects(), 2)
	assert.Empty(t, d2.Projects()[1].Budget)
	assert.Equal(t, "200", d3.Projects()[1].Budget)
}

func TestCreateDraft_RemoveNeverDropsLastRow(t *testing.T) {
	d := NewCreateDraft().RemoveProject(0)
	assert.Len(t, d.Projects(), 1)

	d = d.AddProject().SetProjectName(1, "second").RemoveProject(0)
	require.Len(t, d.Projects(), 1)
	assert.Equal(t, "second", d.Projects()[0].Name)
}

func TestCreateDraft_OutOfRangeIsNoop(t *testing.T) {
	d := NewCreateDraft()
	assert.Equal(t, d, d.SetProjectName(5, "x"))
	assert.Equal(t, d, d.SetProjectBudget(-1, "1"))
	assert.Equal(t, d, d.AddProject().RemoveProject(9).RemoveProject(9).RemoveProject(1))
}

func TestCreateDraft_ValidProjectsFiltersInvalid(t *testing.T) {
	d := NewCreateDraft().
		SetProjectName(0, "Site").SetProjectBudget(0, "1500.50").
		AddProject().SetProjectName(1, "").SetProjectBudget(1, "200").
		AddProject().SetProjectName(2, "Logo").SetProjectBudget(2, "").
		AddProject().SetProjectName(3, "Ads").SetProjectBudget(3, "abc").
		AddProject().SetProjectName(4, "Copy").SetProjectBudget(4, "$1,000")

	valid := d.ValidProjects()
	require.Len(t, valid, 2)
	assert.Equal(t, "Site", valid[0].Name)
	assert.Equal(t, "Copy", valid[1].Name)
	m, err := valid[1].Money()
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100000), m)
}

func editFixture() (*domain.Client, []*domain.Project) {
	now := time.Now().UTC()
	budget := domain.Money(150050)
	c := &domain.Client{ID: "c1", Name: "Acme", Email: "a@acme.test", Status: domain.ClientInactive, CreatedAt: now, UpdatedAt: now}
	ps := []*domain.Project{
		{ID: "p1", ClientID: "c1", Name: "Site", Budget: &budget},
		{ID: "p2", ClientID: "c1", Name: "Logo"},
	}
	return c, ps
}

func TestNewEditDraft_LoadsClientAndProjects(t *testing.T) {
	c, ps := editFixture()
	d := NewEditDraft(c, ps)

	assert.Equal(t, "c1", d.ClientID)
	assert.Equal(t, "Acme", d.Client.Name)
	assert.Equal(t, domain.ClientInactive, d.Client.Status)
	rows := d.Projects()
	require.Len(t, rows, 2)
	assert.Equal(t, ProjectDraft{ID: "p1", Name: "Site", Budget: "1500.50"}, rows[0])
	assert.Equal(t, ProjectDraft{ID: "p2", Name: "Logo", Budget: "0"}, rows[1])
	assert.False(t, rows[0].IsNew())
}

func TestEditDraft_RemoveAllowsEmpty(t *testing.T) {
	c, ps := editFixture()
	d := NewEditDraft(c, ps).RemoveProject(0).RemoveProject(0)
	assert.Empty(t, d.Projects())
	assert.Empty(t, d.StagedDeletes())
}

func TestEditDraft_StageDeleteRecordsStoredRowsOnly(t *testing.T) {
	c, ps := editFixture()
	d0 := NewEditDraft(c, ps).AddProject()
	d1 := d0.StageDelete(2).StageDelete(0)

	assert.Equal(t, []string{"p1"}, d1.StagedDeletes())
	require.Len(t, d1.Projects(), 1)
	assert.Equal(t, "p2", d1.Projects()[0].ID)
	assert.Empty(t, d0.StagedDeletes())
	assert.Len(t, d0.Projects(), 3)
}

func TestEditDraft_AddedRowIsNew(t *testing.T) {
	c, ps := editFixture()
	d := NewEditDraft(c, ps).AddProject().SetProjectName(2, "Ads").SetProjectBudget(2, "10")

	p, ok := d.Project(2)
	require.True(t, ok)
	assert.True(t, p.IsNew())
	assert.Len(t, d.ValidProjects(), 3)
}
