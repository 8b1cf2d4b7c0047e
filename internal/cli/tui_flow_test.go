package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/listing"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// failingClients fails every delete with a store error.
type failingClients struct {
	service.ClientService
}

func (failingClients) Delete(context.Context, string) error {
	return &repository.StoreError{Op: "delete", Table: "clients", Err: errors.New("database is locked")}
}

// wizardDone runs the done callback of the wizard on top of the stack, as
// if the user had finished the form without changing its defaults.
func (d *TestDriver) wizardDone() {
	d.T.Helper()
	m := d.appModel()
	w, ok := m.activeView().(*wizardView)
	require.True(d.T, ok, "active view is %T", m.activeView())
	d.Send(wizardCompleteMsg{nextCmd: w.done()})
}

// completeWizard pops the wizard on top of the stack and delivers msg to
// the view underneath.
func (d *TestDriver) completeWizard(msg tea.Msg) {
	d.T.Helper()
	require.Equal(d.T, ViewForm, d.ActiveViewID())
	d.Send(wizardCompleteMsg{nextCmd: func() tea.Msg { return msg }})
}

// ── Client list ──────────────────────────────────────────────────────────────

func TestClientList_EmptyState(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewClientList, d.ActiveViewID())
	d.AssertViewContains("No clients found. Add your first client to get started.", "Clients 0")
}

func TestClientList_ShowsOverviewRows(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime, 150050, 20000)
	seedClient(t, database, "Globex", seedTime.Add(time.Hour))
	d := NewTestDriver(t, app)

	d.AssertViewContains("Acme", "Globex", "$1,700.50", "Total budget $1,700.50", "CREATED ↓")
	assert.Equal(t, []string{"Globex", "Acme"}, d.VisibleNames())
}

func TestClientList_SortCyclesThroughDirections(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime, 50000)
	seedClient(t, database, "Globex", seedTime.Add(time.Hour), 150000)
	seedClient(t, database, "Initech", seedTime.Add(2*time.Hour), 100000)
	d := NewTestDriver(t, app)

	fetchOrder := []string{"Initech", "Globex", "Acme"}
	assert.Equal(t, fetchOrder, d.VisibleNames())

	d.PressKey('4')
	assert.Equal(t, listing.SortState{Column: listing.ColTotalBudget, Direction: listing.DirDesc}, d.State().Sort)
	assert.Equal(t, []string{"Globex", "Initech", "Acme"}, d.VisibleNames())
	d.AssertViewContains("TOTAL BUDGET ↓")

	d.PressKey('4')
	assert.Equal(t, []string{"Acme", "Initech", "Globex"}, d.VisibleNames())
	d.AssertViewContains("TOTAL BUDGET ↑")

	d.PressKey('4')
	assert.False(t, d.State().Sort.Active())
	assert.Equal(t, fetchOrder, d.VisibleNames())
	assert.NotContains(t, d.PlainView(), "↑")
	assert.NotContains(t, d.PlainView(), "↓")

	// Another column starts fresh in its own first direction.
	d.PressKey('1')
	assert.Equal(t, []string{"Acme", "Globex", "Initech"}, d.VisibleNames())
}

func TestClientList_SortSurvivesReload(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime, 50000)
	seedClient(t, database, "Globex", seedTime.Add(time.Hour), 150000)
	d := NewTestDriver(t, app)

	d.PressKey('1')
	d.PressKey('r')

	assert.Equal(t, []string{"Acme", "Globex"}, d.VisibleNames())
}

func TestClientList_FilterNarrowsRows(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime)
	seedClient(t, database, "Globex", seedTime.Add(time.Hour))
	d := NewTestDriver(t, app)

	d.PressKey('/')
	d.Type("glo")
	d.PressEnter()
	assert.Equal(t, []string{"Globex"}, d.VisibleNames())

	d.PressKey('/')
	d.PressEsc()
	assert.Len(t, d.VisibleNames(), 2)
	assert.False(t, d.IsQuitting())
}

func TestClientList_QuitKey(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestClientList_DeleteAsksForConfirmation(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.PressKey('d')

	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Confirm Delete", d.ActiveViewTitle())

	// Leaving the confirm at its default keeps the client.
	d.wizardDone()
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, stripANSI(d.LastOutput()), "Cancelled.")
	_, err := app.Clients.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, d.VisibleNames())
}

func TestClientList_ConfirmedDeleteRemovesClient(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	seedClient(t, database, "Globex", seedTime.Add(time.Hour))
	d := NewTestDriver(t, app)

	d.Send(wizardCompleteMsg{nextCmd: func() tea.Msg {
		return runDelete("Acme", "delete client", func(ctx context.Context) error {
			return app.Clients.Delete(ctx, c.ID)
		})
	}})

	assert.Contains(t, stripANSI(d.LastOutput()), "Deleted: Acme")
	assert.Equal(t, []string{"Globex"}, d.VisibleNames())
	projects, err := repository.NewSQLiteRepos(database).Projects.ListByClient(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestClientList_DeleteFailureShowsAlertAndKeepsRow(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	app.Clients = failingClients{ClientService: app.Clients}
	d := NewTestDriver(t, app)

	d.Send(wizardCompleteMsg{nextCmd: func() tea.Msg {
		return runDelete("Acme", "delete client", func(ctx context.Context) error {
			return app.Clients.Delete(ctx, c.ID)
		})
	}})

	out := stripANSI(d.LastOutput())
	assert.Contains(t, out, "Failed to delete client. Please try again.")
	assert.NotContains(t, out, "database is locked")
	assert.Equal(t, []string{"Acme"}, d.VisibleNames())
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestClientForm_CreateStoresClientAndProjects(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	require.Equal(t, ViewClientForm, d.ActiveViewID())
	assert.Equal(t, "New Client", d.ActiveViewTitle())

	d.Send(clientFieldsMsg{fields: domain.ClientFields{Name: "Acme", Email: "ops@acme.test", Status: domain.ClientActive}})
	d.Send(projectRowMsg{index: 0, name: "Website", budget: "1500.50"})

	d.PressKey('a')
	d.completeWizard(projectRowMsg{index: 1, name: "Logo", budget: "$200"})
	require.Len(t, d.FormView().projects(), 2)
	d.AssertViewContains("Website", "$1,500.50", "Logo", "$200.00")

	d.PressKey('s')

	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, stripANSI(d.LastOutput()), "Created: Acme")

	rows := d.ListView().rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Name)
	assert.Equal(t, "ops@acme.test", rows[0].Email)
	assert.Equal(t, 2, rows[0].ProjectCount)
	assert.Equal(t, domain.Money(170050), rows[0].TotalBudget)
}

func TestClientForm_CreateSkipsIncompleteRows(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.Send(clientFieldsMsg{fields: domain.ClientFields{Name: "Acme"}})
	d.Send(projectRowMsg{index: 0, name: "Website", budget: "100"})
	d.PressKey('a')
	d.completeWizard(projectRowMsg{index: 1, name: "No budget", budget: ""})
	d.AssertViewContains("skipped on save")

	d.PressKey('s')

	rows := d.ListView().rows
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].ProjectCount)
}

func TestClientForm_CreateWithoutNameShowsAlert(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.Send(projectRowMsg{index: 0, name: "Website", budget: "100"})
	d.PressKey('s')

	assert.Equal(t, ViewClientForm, d.ActiveViewID())
	d.AssertViewContains("client name is required")
	assert.Empty(t, d.ListView().rows)
}

func TestClientForm_CreateWithoutProjectsKeepsClientRow(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.Send(clientFieldsMsg{fields: domain.ClientFields{Name: "Acme"}})
	d.PressKey('s')

	// The form stays open with the alert, and the list under it already
	// shows the client that was written before the projects were checked.
	assert.Equal(t, ViewClientForm, d.ActiveViewID())
	d.AssertViewContains("At least one project with name and budget is required")

	rows := d.ListView().rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Name)
	assert.Equal(t, 0, rows[0].ProjectCount)
}

func TestClientForm_CreateStrictWritesNothingOnFailure(t *testing.T) {
	app, _ := newTestAppWithOptions(t, service.WorkflowOptions{ValidateBeforeWrite: true})
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.Send(clientFieldsMsg{fields: domain.ClientFields{Name: "Acme"}})
	d.PressKey('s')

	d.AssertViewContains("At least one project with name and budget is required")
	assert.Empty(t, d.ListView().rows)
}

func TestClientForm_CreateNeverRemovesLastRow(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.PressKey('x')

	assert.Len(t, d.FormView().projects(), 1)
}

func TestClientForm_EscDiscardsDraft(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	d.Send(clientFieldsMsg{fields: domain.ClientFields{Name: "Acme"}})
	d.PressEsc()

	assert.Equal(t, 1, d.ViewStackLen())
	assert.Empty(t, d.ListView().rows)
}

// ── Edit ─────────────────────────────────────────────────────────────────────

func TestClientForm_EditRemovesStoredProjectImmediately(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000, 25000)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	require.Equal(t, ViewClientForm, d.ActiveViewID())
	assert.Equal(t, "Edit Acme", d.ActiveViewTitle())
	fv := d.FormView()
	require.Len(t, fv.projects(), 2)

	d.PressKey('x')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.completeWizard(removeProject(app.Workflow, fv.edit, 0))
	assert.Len(t, d.FormView().projects(), 1)

	// Cancelling the form does not bring the project back.
	d.PressEsc()
	assert.Equal(t, 1, d.ViewStackLen())

	projects, err := app.Clients.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
	rows := d.ListView().rows
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].ProjectCount)
}

func TestClientForm_EditRemoveCancelledKeepsProject(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	d.PressKey('x')
	d.wizardDone()

	assert.Equal(t, ViewClientForm, d.ActiveViewID())
	assert.Len(t, d.FormView().projects(), 1)
	projects, err := app.Clients.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestClientForm_EditStagedRemoveWaitsForSave(t *testing.T) {
	app, database := newTestAppWithOptions(t, service.WorkflowOptions{StageProjectDeletes: true})
	c := seedClient(t, database, "Acme", seedTime, 50000, 25000)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	fv := d.FormView()
	d.PressKey('x')
	d.completeWizard(removeProject(app.Workflow, fv.edit, 0))
	d.AssertViewContains("1 project(s) will be deleted on save")

	projects, err := app.Clients.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	d.PressKey('s')

	projects, err = app.Clients.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestClientForm_EditNewRowRemovedWithoutConfirm(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	d.PressKey('a')
	d.completeWizard(projectRowMsg{index: 1, name: "Extra", budget: "10"})
	require.Len(t, d.FormView().projects(), 2)

	d.PressKey('x')

	assert.Equal(t, ViewClientForm, d.ActiveViewID())
	assert.Len(t, d.FormView().projects(), 1)
}

func TestClientForm_EditSubmitUpdatesClientAndProjects(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	fields := d.FormView().edit.Client
	fields.Name = "Acme Corp"
	fields.Status = domain.ClientInactive
	d.Send(clientFieldsMsg{fields: fields})
	d.Send(projectRowMsg{index: 0, name: "Redesign", budget: "900"})
	d.PressKey('a')
	d.completeWizard(projectRowMsg{index: 1, name: "Hosting", budget: "100"})

	d.PressKey('s')

	assert.Equal(t, 1, d.ViewStackLen())
	assert.Contains(t, stripANSI(d.LastOutput()), "Updated: Acme Corp")

	got, err := app.Clients.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)
	assert.Equal(t, domain.ClientInactive, got.Status)

	rows := d.ListView().rows
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ProjectCount)
	assert.Equal(t, domain.Money(100000), rows[0].TotalBudget)
}

func TestClientForm_EditCanRemoveEveryProject(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	fv := d.FormView()
	d.PressKey('x')
	d.completeWizard(removeProject(app.Workflow, fv.edit, 0))
	d.AssertViewContains("No projects. Press a to add one.")

	d.PressKey('s')

	assert.Equal(t, 1, d.ViewStackLen())
	projects, err := app.Clients.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

// ── Detail ───────────────────────────────────────────────────────────────────

func TestClientDetail_ShowsClientAndProjects(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime, 50000, 25000)
	d := NewTestDriver(t, app)

	d.PressEnter()

	require.Equal(t, ViewClientDetail, d.ActiveViewID())
	assert.Equal(t, "Acme", d.ActiveViewTitle())
	d.AssertViewContains("P1", "P2", "$500.00", "$250.00", "Total budget $750.00", "● Active")
}

func TestClientDetail_TasksShowAsOutput(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	projects, err := app.Clients.ListProjects(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.NoError(t, app.Tasks.Create(context.Background(), testutil.NewTestTask(projects[0].ID, "Wireframes")))
	d := NewTestDriver(t, app)

	d.PressEnter()
	d.PressKey('t')

	assert.Contains(t, stripANSI(d.LastOutput()), "Wireframes")
}

func TestClientDetail_PopsWhenClientDeleted(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.PressEnter()
	d.PressKey('d')
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.completeWizard(runDelete("Acme", "delete client", func(ctx context.Context) error {
		return app.Clients.Delete(ctx, c.ID)
	}))

	assert.Equal(t, 1, d.ViewStackLen())
	assert.Equal(t, ViewClientList, d.ActiveViewID())
	assert.Empty(t, d.ListView().rows)
}

// ── Command bar ──────────────────────────────────────────────────────────────

func TestCommandBar_ClientListPrintsTable(t *testing.T) {
	app, database := newTestApp(t)
	seedClient(t, database, "Acme", seedTime, 50000)
	d := NewTestDriver(t, app)

	d.Command("client list")

	out := stripANSI(d.LastOutput())
	assert.Contains(t, out, "TOTAL BUDGET")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "$500.00")
}

func TestCommandBar_ClientDeleteAsksInsideDashboard(t *testing.T) {
	app, database := newTestApp(t)
	c := seedClient(t, database, "Acme", seedTime)
	d := NewTestDriver(t, app)

	d.Command("client delete " + c.ID)

	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Confirm Delete", d.ActiveViewTitle())
	assert.False(t, d.CmdBarFocused())
	_, err := app.Clients.Get(context.Background(), c.ID)
	assert.NoError(t, err)
}

func TestCommandBar_NewOpensForm(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.Command("new")

	assert.Equal(t, ViewClientForm, d.ActiveViewID())
}

func TestCommandBar_UnknownCommandShowsError(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.Command("bogus")

	assert.Contains(t, stripANSI(d.LastOutput()), "unknown command")
}

func TestCommandBar_QuitCommand(t *testing.T) {
	app, _ := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey(':')
	d.Type("quit")
	d.PressEnter()

	assert.True(t, d.IsQuitting())
}
