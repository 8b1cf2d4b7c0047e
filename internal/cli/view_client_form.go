package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/draft"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientFieldsMsg carries the result of the client details wizard.
type clientFieldsMsg struct {
	fields domain.ClientFields
}

// projectRowMsg carries the result of the project row wizard.
type projectRowMsg struct {
	index  int
	name   string
	budget string
}

// projectRemovedMsg carries the edit draft after a row removal.
type projectRemovedMsg struct {
	draft draft.EditDraft
	err   error
}

// clientSubmittedMsg reports the outcome of a create or edit submit.
type clientSubmittedMsg struct {
	name string
	err  error
	// written is set when a failed create still left the client row behind.
	written bool
}

// clientFormView edits one client and its project rows. In create mode it
// holds a CreateDraft; in edit mode an EditDraft opened from the store.
type clientFormView struct {
	state      *SharedState
	editing    bool
	create     draft.CreateDraft
	edit       draft.EditDraft
	cursor     int
	submitting bool
	alert      string
}

func newCreateClientView(state *SharedState) *clientFormView {
	return &clientFormView{state: state, create: draft.NewCreateDraft()}
}

func newEditClientView(state *SharedState, d draft.EditDraft) *clientFormView {
	return &clientFormView{state: state, editing: true, edit: d}
}

func (v *clientFormView) ID() ViewID { return ViewClientForm }

func (v *clientFormView) Title() string {
	if v.editing {
		return "Edit " + v.edit.Client.Name
	}
	return "New Client"
}

func (v *clientFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "client details")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add project")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit project")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove project")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
}

func (v *clientFormView) Init() tea.Cmd { return nil }

// ── draft accessors ──────────────────────────────────────────────────────────

func (v *clientFormView) projects() []draft.ProjectDraft {
	if v.editing {
		return v.edit.Projects()
	}
	return v.create.Projects()
}

func (v *clientFormView) clientFields() domain.ClientFields {
	if v.editing {
		return v.edit.Client
	}
	return v.create.Client
}

func (v *clientFormView) setClient(f domain.ClientFields) {
	if v.editing {
		v.edit = v.edit.WithClient(f)
		return
	}
	v.create = v.create.WithClient(f)
}

func (v *clientFormView) setRow(i int, name, budget string) {
	if v.editing {
		v.edit = v.edit.SetProjectName(i, name).SetProjectBudget(i, budget)
		return
	}
	v.create = v.create.SetProjectName(i, name).SetProjectBudget(i, budget)
}

func (v *clientFormView) addRow() {
	if v.editing {
		v.edit = v.edit.AddProject()
	} else {
		v.create = v.create.AddProject()
	}
	v.cursor = len(v.projects()) - 1
}

func (v *clientFormView) clampCursor() {
	n := len(v.projects())
	if v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *clientFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientFieldsMsg:
		v.setClient(msg.fields)
		v.alert = ""
		return v, nil

	case projectRowMsg:
		v.setRow(msg.index, msg.name, msg.budget)
		v.alert = ""
		return v, nil

	case projectRemovedMsg:
		if msg.err != nil {
			v.alert = service.Alert("delete project", msg.err)
			return v, nil
		}
		v.edit = msg.draft
		v.alert = ""
		v.clampCursor()
		return v, nil

	case clientSubmittedMsg:
		v.submitting = false
		if msg.err != nil {
			action := "create client"
			if v.editing {
				action = "update client"
			}
			v.alert = service.Alert(action, msg.err)
			if msg.written {
				return v, refreshViews()
			}
			return v, nil
		}
		verb := "Created"
		if v.editing {
			verb = "Updated"
		}
		out := formatter.Success(verb + ": " + formatter.Bold(msg.name))
		return v, func() tea.Msg { return wizardCompleteOutput(out) }

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *clientFormView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.projects()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "c":
		return v, v.editClientCmd()
	case "a":
		v.addRow()
		return v, v.editRowCmd(v.cursor)
	case "enter":
		if v.cursor < len(rows) {
			return v, v.editRowCmd(v.cursor)
		}
	case "x":
		if v.cursor < len(rows) {
			return v, v.removeRowCmd(v.cursor)
		}
	case "s", "ctrl+s":
		v.submitting = true
		v.alert = ""
		return v, v.submitCmd()
	}
	return v, nil
}

func (v *clientFormView) editClientCmd() tea.Cmd {
	values := newClientFieldValues(v.clientFields())
	form := wizardClientFields(values)
	return pushView(newWizardView(v.state, "Client Details", form, func() tea.Cmd {
		return func() tea.Msg { return clientFieldsMsg{fields: values.fields()} }
	}))
}

func (v *clientFormView) editRowCmd(i int) tea.Cmd {
	rows := v.projects()
	if i < 0 || i >= len(rows) {
		return nil
	}
	name, budget := rows[i].Name, rows[i].Budget
	form := wizardProjectRow(&name, &budget)
	return pushView(newWizardView(v.state, "Project", form, func() tea.Cmd {
		return func() tea.Msg {
			return projectRowMsg{index: i, name: strings.TrimSpace(name), budget: strings.TrimSpace(budget)}
		}
	}))
}

// removeRowCmd drops row i. In create mode this is purely local and never
// removes the last row. In edit mode a stored project is confirmed first
// and then handed to the workflow, which deletes it or stages the delete.
func (v *clientFormView) removeRowCmd(i int) tea.Cmd {
	if !v.editing {
		v.create = v.create.RemoveProject(i)
		v.clampCursor()
		return nil
	}

	wf := v.state.App.Workflow
	d := v.edit
	remove := func() tea.Msg { return removeProject(wf, d, i) }

	row, ok := d.Project(i)
	if !ok {
		return nil
	}
	if row.IsNew() {
		return remove
	}
	return execConfirm(v.state, deleteProjectPrompt, "Remove Project", remove)
}

// removeProject hands row i of d to the workflow.
func removeProject(wf service.ClientWorkflow, d draft.EditDraft, i int) tea.Msg {
	out, err := wf.RemoveProject(context.Background(), d, i)
	return projectRemovedMsg{draft: out, err: err}
}

func (v *clientFormView) submitCmd() tea.Cmd {
	wf := v.state.App.Workflow
	if v.editing {
		d := v.edit
		return func() tea.Msg {
			c, err := wf.SubmitEdit(context.Background(), d)
			if err != nil {
				return clientSubmittedMsg{name: d.Client.Name, err: err}
			}
			return clientSubmittedMsg{name: c.Name}
		}
	}
	d := v.create
	return func() tea.Msg {
		res, err := wf.Create(context.Background(), d)
		if err != nil {
			return clientSubmittedMsg{name: d.Client.Name, err: err, written: res != nil}
		}
		return clientSubmittedMsg{name: res.Client.Name}
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

func (v *clientFormView) View() string {
	var b strings.Builder
	f := v.clientFields()

	b.WriteString("\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim(fmt.Sprintf("%-8s", label)), value))
	}
	name := f.Name
	if strings.TrimSpace(name) == "" {
		name = formatter.StyleYellow.Render("(required)")
	} else {
		name = formatter.Bold(name)
	}
	field("NAME", name)
	field("EMAIL", formatter.OrDash(f.Email))
	field("PHONE", formatter.OrDash(f.Phone))
	field("WEBSITE", formatter.OrDash(f.Website))
	field("STATUS", formatter.ClientStatusPill(domain.ClientStatus(domain.CoalesceStr(string(f.Status), string(domain.ClientActive)))))
	if strings.TrimSpace(f.Notes) != "" {
		field("NOTES", f.Notes)
	}

	b.WriteString("\n  " + formatter.Header("Projects") + "\n")
	rows := v.projects()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No projects. Press a to add one.") + "\n")
	}
	for i, p := range rows {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		label := p.Name
		if strings.TrimSpace(label) == "" {
			label = formatter.Dim("(unnamed)")
		}
		budget := formatter.Dim("-")
		if m, err := p.Money(); err == nil {
			budget = formatter.FormatMoney(m)
		} else if strings.TrimSpace(p.Budget) != "" {
			budget = formatter.StyleRed.Render(p.Budget)
		}
		badge := ""
		if v.editing && p.IsNew() {
			badge = "  " + formatter.StyleBlue.Render("new")
		}
		if !p.Valid() {
			badge += "  " + formatter.Dim("skipped on save")
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s%s\n", cursor, padRight(label, 28), budget, badge))
	}

	if v.editing {
		if n := len(v.edit.StagedDeletes()); n > 0 {
			b.WriteString("\n  " + formatter.StyleYellow.Render(fmt.Sprintf("%d project(s) will be deleted on save", n)) + "\n")
		}
	}
	if v.submitting {
		b.WriteString("\n  " + formatter.Dim("Saving...") + "\n")
	}
	if v.alert != "" {
		b.WriteString("\n  " + formatter.Alert(v.alert) + "\n")
	}
	return b.String()
}

// padRight pads a string to a visible width, truncating if needed.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if r := []rune(s); w > width && len(r) >= width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", max(width-w, 0))
}
