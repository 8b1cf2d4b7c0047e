package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage a project's tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDeleteCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectID, name, description, status, priority string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{
				ProjectID:   projectID,
				Name:        strings.TrimSpace(name),
				Description: description,
				Status:      domain.TaskStatus(strings.ToLower(status)),
				Priority:    domain.TaskPriority(strings.ToLower(priority)),
			}
			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return alertError("create task", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", formatter.Success("Added task "+formatter.Bold(t.Name)), t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "open, in_progress, on_hold or completed (default open)")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low (default medium)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListByProject(cmd.Context(), args[0])
			if err != nil {
				return alertError("load tasks", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTasks(tasks))
			return nil
		},
	}
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Delete(cmd.Context(), args[0]); err != nil {
				return alertError("delete task", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted task "+args[0]))
			return nil
		},
	}
}
