package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/draft"
	"github.com/alexanderramin/clientdesk/internal/listing"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(
		newClientListCmd(app),
		newClientShowCmd(app),
		newClientAddCmd(app),
		newClientEditCmd(app),
		newClientDeleteCmd(app),
	)

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var sortCol string
	var asc, desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients with project counts and total budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := sortFromFlags(sortCol, asc, desc)
			if err != nil {
				return err
			}
			rows, err := app.Overview.List(cmd.Context())
			if err != nil {
				return alertError("load clients", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSummary(listing.Summarize(rows)))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatOverview(state.Apply(rows), state))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortCol, "sort", "", "Sort column: name, email, project_count, total_budget, status, created_at, or none")
	cmd.Flags().BoolVar(&asc, "asc", false, "Sort ascending")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.MarkFlagsMutuallyExclusive("asc", "desc")

	return cmd
}

// sortFromFlags builds the list ordering. Without --sort the default
// (newest first) applies; a column alone uses that column's first direction.
func sortFromFlags(col string, asc, desc bool) (listing.SortState, error) {
	state := listing.DefaultSort()
	switch strings.ToLower(strings.TrimSpace(col)) {
	case "":
	case "none":
		return listing.SortState{Direction: listing.DirNone}, nil
	default:
		c, err := listing.ParseColumn(col)
		if err != nil {
			return state, err
		}
		state = listing.SortState{Column: c, Direction: c.FirstDirection()}
	}
	if asc {
		state.Direction = listing.DirAsc
	}
	if desc {
		state.Direction = listing.DirDesc
	}
	return state, nil
}

func newClientShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CLIENT_ID",
		Short: "Show a client and its projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.Clients.Get(ctx, args[0])
			if err != nil {
				return alertError("load client", err)
			}
			projects, err := app.Clients.ListProjects(ctx, c.ID)
			if err != nil {
				return alertError("load projects", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatClientDetail(c, projects))
			return nil
		},
	}
}

// clientFlags binds the client attribute flags shared by add and edit.
type clientFlags struct {
	name, email, phone, website, status, notes string
}

func (f *clientFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Client name")
	fs.StringVar(&f.email, "email", "", "Contact email")
	fs.StringVar(&f.phone, "phone", "", "Contact phone")
	fs.StringVar(&f.website, "website", "", "Website")
	fs.StringVar(&f.status, "status", "", "Status: active or inactive")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
}

// apply overlays the flags the user actually set onto base.
func (f *clientFlags) apply(fs *pflag.FlagSet, base domain.ClientFields) domain.ClientFields {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = strings.TrimSpace(v)
		}
	}
	set("name", &base.Name, f.name)
	set("email", &base.Email, f.email)
	set("phone", &base.Phone, f.phone)
	set("website", &base.Website, f.website)
	set("notes", &base.Notes, f.notes)
	if fs.Changed("status") {
		base.Status = domain.ClientStatus(strings.ToLower(strings.TrimSpace(f.status)))
	}
	return base
}

// parseProjectEntry splits "Name=Budget". The budget is whatever follows the
// last '='; an entry without one has an empty budget.
func parseProjectEntry(s string) (name, budget string) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
}

func newClientAddCmd(app *App) *cobra.Command {
	var flags clientFlags
	var projects []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client with at least one project",
		Example: `  clientdesk client add --name "Acme" --email ops@acme.test \
    --project "Website=1500.50" --project "Audit=200"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := draft.NewCreateDraft()
			d = d.WithClient(flags.apply(cmd.Flags(), d.Client))
			for i, entry := range projects {
				if i > 0 {
					d = d.AddProject()
				}
				name, budget := parseProjectEntry(entry)
				d = d.SetProjectName(i, name).SetProjectBudget(i, budget)
			}

			res, err := app.Workflow.Create(cmd.Context(), d)
			if err != nil {
				if res != nil && res.Client != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\n",
						formatter.StyleYellow.Render(fmt.Sprintf("Client %s was saved with %d project(s).",
							res.Client.ID, len(res.Projects))))
				}
				return alertError("create client", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) with %d project(s)\n",
				formatter.Success("Created client "+formatter.Bold(res.Client.Name)),
				res.Client.ID, len(res.Projects))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&projects, "project", nil, `Project as "Name=Budget" (repeatable)`)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientEditCmd(app *App) *cobra.Command {
	var flags clientFlags
	var add, update, remove []string

	cmd := &cobra.Command{
		Use:   "edit CLIENT_ID",
		Short: "Edit a client and its projects",
		Example: `  clientdesk client edit 6f1c... --status inactive \
    --update-project "PROJECT_ID=Website=1800" --remove-project PROJECT_ID --project "Support=300"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := app.Workflow.OpenEdit(ctx, args[0])
			if err != nil {
				return alertError("load client", err)
			}
			d = d.WithClient(flags.apply(cmd.Flags(), d.Client))

			for _, pid := range remove {
				i := indexOfDraftProject(d, pid)
				if i < 0 {
					return domain.NewValidationError("remove-project", fmt.Sprintf("project %s does not belong to this client", pid))
				}
				if d, err = app.Workflow.RemoveProject(ctx, d, i); err != nil {
					return alertError("delete project", err)
				}
			}

			for _, entry := range update {
				pid, rest, ok := strings.Cut(entry, "=")
				i := indexOfDraftProject(d, strings.TrimSpace(pid))
				if !ok || i < 0 {
					return domain.NewValidationError("update-project", fmt.Sprintf("%q must be PROJECT_ID=Name=Budget for a project of this client", entry))
				}
				name, budget := parseProjectEntry(rest)
				d = d.SetProjectName(i, name).SetProjectBudget(i, budget)
			}

			for _, entry := range add {
				d = d.AddProject()
				i := len(d.Projects()) - 1
				name, budget := parseProjectEntry(entry)
				d = d.SetProjectName(i, name).SetProjectBudget(i, budget)
			}

			c, err := app.Workflow.SubmitEdit(ctx, d)
			if err != nil {
				return alertError("update client", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated client "+formatter.Bold(c.Name)))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringArrayVar(&add, "project", nil, `Add a project as "Name=Budget" (repeatable)`)
	cmd.Flags().StringArrayVar(&update, "update-project", nil, `Change a project as "PROJECT_ID=Name=Budget" (repeatable)`)
	cmd.Flags().StringArrayVar(&remove, "remove-project", nil, "Remove a project by ID (repeatable)")

	return cmd
}

func indexOfDraftProject(d draft.EditDraft, projectID string) int {
	for i, p := range d.Projects() {
		if p.ID != "" && p.ID == projectID {
			return i
		}
	}
	return -1
}

func newClientDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete CLIENT_ID",
		Short: "Delete a client with all its projects and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.Clients.Get(ctx, args[0])
			if err != nil {
				return alertError("load client", err)
			}

			if !yes {
				ok, err := confirmOnTerminal(app, deleteClientPrompt(c.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if err := app.Clients.Delete(ctx, c.ID); err != nil {
				return alertError("delete client", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted client "+formatter.Bold(c.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// errNeedsConfirmation is returned by destructive commands run without a
// terminal and without --yes.
var errNeedsConfirmation = errors.New("refusing to delete without confirmation; pass --yes")

// confirmOnTerminal asks a yes/no question with huh when stdin is a
// terminal.
func confirmOnTerminal(app *App, prompt string) (bool, error) {
	if !app.interactive() {
		return false, errNeedsConfirmation
	}
	var ok bool
	if err := wizardConfirm(prompt, &ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}
