package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientdesk/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Overview service.OverviewService
	Clients  service.ClientService
	Workflow service.ClientWorkflow
	Tasks    service.TaskService

	// Serve runs the HTTP API on addr until ctx is cancelled. An empty addr
	// means the configured default.
	Serve func(ctx context.Context, addr string) error

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "clientdesk" command and registers all
// subcommands against the provided App. Run without arguments on a
// terminal it opens the dashboard.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "clientdesk",
		Short: "Track clients, their projects and budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runDashboard(app)
		},
	}

	root.AddCommand(
		newClientCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newServeCmd(app),
	)

	return root
}

// runDashboard starts the full-screen TUI.
func runDashboard(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
