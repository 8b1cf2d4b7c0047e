package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/listing"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// clientsLoadedMsg carries a fresh overview fetch.
type clientsLoadedMsg struct {
	rows []*domain.ClientOverview
	err  error
}

// clientListView is the dashboard: the client overview table with sorting,
// filtering and row actions.
type clientListView struct {
	state   *SharedState
	rows    []*domain.ClientOverview // fetch order
	cursor  int
	loading bool
	err     error

	// Filtering
	filtering bool
	filter    string
}

func newClientListView(state *SharedState) *clientListView {
	return &clientListView{
		state:   state,
		loading: true,
	}
}

func (v *clientListView) ID() ViewID    { return ViewClientList }
func (v *clientListView) Title() string { return "Clients" }

func (v *clientListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "sort")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *clientListView) Init() tea.Cmd {
	return v.loadClients()
}

func (v *clientListView) loadClients() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		rows, err := app.Overview.List(context.Background())
		return clientsLoadedMsg{rows: rows, err: err}
	}
}

func (v *clientListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			v.rows = nil
			return v, nil
		}
		v.rows = msg.rows
		v.clampCursor()
		return v, nil

	case refreshViewMsg:
		return v, v.loadClients()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *clientListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleRows()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "1", "2", "3", "4", "5", "6":
		col := listing.Columns()[int(msg.String()[0]-'1')]
		v.state.Sort = v.state.Sort.Toggle(col)
	case "n":
		return v, pushView(newCreateClientView(v.state))
	case "r":
		v.loading = true
		return v, v.loadClients()
	case "/":
		v.filtering = true
		v.filter = ""
		v.cursor = 0
	}

	row := v.selected(visible)
	if row == nil {
		return v, nil
	}
	switch msg.String() {
	case "enter":
		return v, pushView(newClientDetailView(v.state, row.ID))
	case "e":
		return v, openEditClientCmd(v.state, row.ID)
	case "d":
		return v, execDeleteClient(v.state, row.ID, row.Name)
	}
	return v, nil
}

func (v *clientListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

// visibleRows applies the filter and then the active sort.
func (v *clientListView) visibleRows() []*domain.ClientOverview {
	rows := v.rows
	if v.filter != "" {
		lf := strings.ToLower(v.filter)
		var filtered []*domain.ClientOverview
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r.Name), lf) ||
				strings.Contains(strings.ToLower(r.Email), lf) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	return v.state.Sort.Apply(rows)
}

func (v *clientListView) selected(visible []*domain.ClientOverview) *domain.ClientOverview {
	if v.cursor < 0 || v.cursor >= len(visible) {
		return nil
	}
	return visible[v.cursor]
}

func (v *clientListView) clampCursor() {
	n := len(v.visibleRows())
	if v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *clientListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading clients...")
	}
	if v.err != nil {
		return "\n  " + formatter.Alert(service.Alert("load clients", v.err))
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.FormatSummary(listing.Summarize(v.rows)) + "\n\n")

	if v.filtering || v.filter != "" {
		cursor := ""
		if v.filtering {
			cursor = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + cursor + "\n\n")
	}

	visible := v.visibleRows()
	headers := append([]string{" "}, formatter.OverviewHeaders(v.state.Sort)...)
	var table string
	if len(visible) == 0 {
		table = formatter.RenderTable(headers, [][]string{{" ", formatter.Dim(formatter.EmptyOverviewMessage)}})
	} else {
		cells := make([][]string, 0, len(visible))
		for i, r := range visible {
			marker := " "
			if i == v.cursor {
				marker = formatter.StyleGreen.Render("▸")
			}
			cells = append(cells, append([]string{marker}, formatter.OverviewCells(r)...))
		}
		table = formatter.RenderTable(headers, cells, formatter.AlignRight(3, 4))
	}

	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}
