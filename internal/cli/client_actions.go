package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// deleteProjectPrompt is the confirmation shown before a stored project is
// removed.
const deleteProjectPrompt = "Delete this project? This will also delete all tasks."

// deleteClientPrompt names the client in the delete confirmation.
func deleteClientPrompt(name string) string {
	return fmt.Sprintf("Are you sure you want to delete \"%s\"? This will also delete all associated projects and tasks.", name)
}

// alertOutput renders the user-facing message for a failed action.
func alertOutput(action string, err error) string {
	return formatter.Alert(service.Alert(action, err))
}

// wizardCompleteError returns a wizardCompleteMsg that displays the alert for
// a failed action.
func wizardCompleteError(action string, err error) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(alertOutput(action, err))}
}

// wizardCompleteOutput returns a wizardCompleteMsg that displays a message string.
func wizardCompleteOutput(msg string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(msg)}
}

// execConfirm pushes a yes/no wizard and runs onConfirm if the user agrees.
// The message onConfirm returns is delivered to the view under the wizard.
func execConfirm(state *SharedState, prompt, title string, onConfirm func() tea.Msg) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return pushView(newWizardView(state, title, form, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		return onConfirm
	}))
}

// execConfirmDelete pushes a confirmation wizard and runs deleteFn if confirmed.
// A failure shows the alert for action and leaves the data as it was.
func execConfirmDelete(state *SharedState, prompt, title, action string, deleteFn func(ctx context.Context) error) tea.Cmd {
	return execConfirm(state, prompt, "Confirm Delete", func() tea.Msg {
		return runDelete(title, action, deleteFn)
	})
}

// runDelete performs a confirmed delete and reports the outcome as output.
func runDelete(title, action string, deleteFn func(ctx context.Context) error) tea.Msg {
	if err := deleteFn(context.Background()); err != nil {
		return cmdOutputMsg{output: alertOutput(action, err)}
	}
	return cmdOutputMsg{output: formatter.Success("Deleted: " + formatter.Bold(title))}
}

// execDeleteClient confirms and deletes a client with its projects and tasks.
func execDeleteClient(state *SharedState, clientID, name string) tea.Cmd {
	return execConfirmDelete(state, deleteClientPrompt(name), name, "delete client", func(ctx context.Context) error {
		return state.App.Clients.Delete(ctx, clientID)
	})
}

// execDeleteProject confirms and deletes one stored project with its tasks.
func execDeleteProject(state *SharedState, projectID, name string) tea.Cmd {
	return execConfirmDelete(state, deleteProjectPrompt, name, "delete project", func(ctx context.Context) error {
		return state.App.Clients.DeleteProject(ctx, projectID)
	})
}

// openEditClientCmd loads the full client record with its projects and
// pushes the edit form. The overview row is never used as the edit source.
func openEditClientCmd(state *SharedState, clientID string) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		d, err := app.Workflow.OpenEdit(context.Background(), clientID)
		if err != nil {
			return cmdOutputMsg{output: alertOutput("load client", err)}
		}
		return pushViewMsg{view: newEditClientView(state, d)}
	}
}
