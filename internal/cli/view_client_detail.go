package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clientDetailLoadedMsg carries a client with its projects.
type clientDetailLoadedMsg struct {
	clientID string
	client   *domain.Client
	projects []*domain.Project
	err      error
}

// clientDetailView shows one client card and a navigable project list.
type clientDetailView struct {
	state    *SharedState
	clientID string
	client   *domain.Client
	projects []*domain.Project
	cursor   int
	loading  bool
	err      error
}

func newClientDetailView(state *SharedState, clientID string) *clientDetailView {
	return &clientDetailView{state: state, clientID: clientID, loading: true}
}

func (v *clientDetailView) ID() ViewID { return ViewClientDetail }

func (v *clientDetailView) Title() string {
	if v.client == nil {
		return "Client"
	}
	return v.client.Name
}

func (v *clientDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tasks")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete project")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete client")),
	}
}

func (v *clientDetailView) Init() tea.Cmd {
	return v.load()
}

func (v *clientDetailView) load() tea.Cmd {
	app := v.state.App
	id := v.clientID
	return func() tea.Msg {
		ctx := context.Background()
		c, err := app.Clients.Get(ctx, id)
		if err != nil {
			return clientDetailLoadedMsg{clientID: id, err: err}
		}
		projects, err := app.Clients.ListProjects(ctx, id)
		return clientDetailLoadedMsg{clientID: id, client: c, projects: projects, err: err}
	}
}

func (v *clientDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientDetailLoadedMsg:
		if msg.clientID != v.clientID {
			return v, nil
		}
		v.loading = false
		if errors.Is(msg.err, repository.ErrNotFound) && v.client != nil {
			// Deleted underneath us.
			return v, closeView(v)
		}
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.client = msg.client
		v.projects = msg.projects
		if v.cursor >= len(v.projects) {
			v.cursor = max(len(v.projects)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *clientDetailView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.client == nil {
		return v, nil
	}
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
	case "e":
		return v, openEditClientCmd(v.state, v.client.ID)
	case "d":
		return v, execDeleteClient(v.state, v.client.ID, v.client.Name)
	case "x":
		if p := v.selected(); p != nil {
			return v, execDeleteProject(v.state, p.ID, p.Name)
		}
	case "t":
		if p := v.selected(); p != nil {
			return v, projectTasksCmd(v.state, p)
		}
	}
	return v, nil
}

func (v *clientDetailView) selected() *domain.Project {
	if v.cursor < 0 || v.cursor >= len(v.projects) {
		return nil
	}
	return v.projects[v.cursor]
}

// projectTasksCmd shows a project's tasks as transient output.
func projectTasksCmd(state *SharedState, p *domain.Project) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		tasks, err := app.Tasks.ListByProject(context.Background(), p.ID)
		if err != nil {
			return cmdOutputMsg{output: alertOutput("load tasks", err)}
		}
		return cmdOutputMsg{output: formatter.Header(p.Name) + "\n" + formatter.FormatTasks(tasks)}
	}
}

func (v *clientDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading client...")
	}
	if v.err != nil {
		return "\n  " + alertOutput("load client", v.err)
	}

	c := v.client
	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(c.Name) + "  " + formatter.ClientStatusPill(c.Status) + "\n")
	b.WriteString("  " + formatter.Dim(strings.Join([]string{
		formatter.OrDash(c.Email), formatter.OrDash(c.Phone), formatter.OrDash(c.Website),
	}, "  ·  ")) + "\n")
	b.WriteString("  " + formatter.Dim("Client since "+formatter.FormatDate(c.CreatedAt)) + "\n")
	if strings.TrimSpace(c.Notes) != "" {
		b.WriteString("\n  " + c.Notes + "\n")
	}

	b.WriteString("\n  " + formatter.Header("Projects") + "\n")
	if len(v.projects) == 0 {
		b.WriteString("  " + formatter.Dim("No projects.") + "\n")
		return b.String()
	}
	var total domain.Money
	for i, p := range v.projects {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		total += p.BudgetOrZero()
		b.WriteString(fmt.Sprintf("  %s%s  %12s  %s\n",
			cursor,
			padRight(p.Name, 28),
			formatter.FormatBudget(p.Budget),
			formatter.ProjectStatusPill(p.Status),
		))
	}
	b.WriteString("\n  " + formatter.Dim("Total budget ") + formatter.Bold(formatter.FormatMoney(total)) + "\n")
	return b.String()
}
