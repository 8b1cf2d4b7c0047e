package cli

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/alexanderramin/clientdesk/internal/teatest"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with inspection methods for the
// appModel internals (view stack, shared state, command bar focus) that
// the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the client overview synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(140, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// newTestApp wires the real services over an in-memory database with the
// default workflow options.
func newTestApp(t *testing.T) (*App, *sql.DB) {
	t.Helper()
	return newTestAppWithOptions(t, service.WorkflowOptions{})
}

func newTestAppWithOptions(t *testing.T, opts service.WorkflowOptions) (*App, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := repository.NewSQLiteRepos(database)
	tx := repository.NewSQLiteTxRunner(testutil.NewTestUoW(database))
	return &App{
		Overview: service.NewOverviewService(repos.Overview),
		Clients:  service.NewClientService(repos.Clients, repos.Projects),
		Workflow: service.NewClientWorkflow(repos, tx, opts),
		Tasks:    service.NewTaskService(repos.Tasks),
	}, database
}

// testApp is newTestApp for tests that never touch the database directly.
func testApp(t *testing.T) *App {
	t.Helper()
	app, _ := newTestApp(t)
	return app
}

// seedClient stores a client created at createdAt with one project per
// budget, given in cents. Projects are named "P1", "P2", ...
func seedClient(t *testing.T, database *sql.DB, name string, createdAt time.Time, budgets ...int64) *domain.Client {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewSQLiteRepos(database)

	c := testutil.NewTestClient(name, testutil.WithCreatedAt(createdAt))
	require.NoError(t, repos.Clients.Create(ctx, c))
	for i, b := range budgets {
		p := testutil.NewTestProject(c.ID, projectName(i), testutil.WithBudget(b))
		require.NoError(t, repos.Projects.Create(ctx, p))
	}
	return c
}

func projectName(i int) string {
	return "P" + string(rune('1'+i))
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Command focuses the command bar with ':', types the command, and presses Enter.
// Commands that push a view blur the bar on their own; output-only commands
// leave it focused, so the helper blurs it to let key presses reach views.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the app has quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}

// CmdBarFocused reports whether the command bar has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the transient command output, if any.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// ListView returns the client list at the bottom of the stack.
func (d *TestDriver) ListView() *clientListView {
	d.T.Helper()
	m := d.appModel()
	require.NotEmpty(d.T, m.viewStack)
	lv, ok := m.viewStack[0].(*clientListView)
	require.True(d.T, ok, "bottom view is %T", m.viewStack[0])
	return lv
}

// FormView returns the active client form.
func (d *TestDriver) FormView() *clientFormView {
	d.T.Helper()
	m := d.appModel()
	fv, ok := m.activeView().(*clientFormView)
	require.True(d.T, ok, "active view is %T", m.activeView())
	return fv
}

// VisibleNames returns client names in the order the list shows them.
func (d *TestDriver) VisibleNames() []string {
	var names []string
	for _, r := range d.ListView().visibleRows() {
		names = append(names, r.Name)
	}
	return names
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
