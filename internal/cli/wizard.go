package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/cli/formatter"
	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// clientdeskHuhTheme returns a custom huh theme using the Gruvbox palette.
func clientdeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateRequired rejects blank input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalBudget accepts empty or an amount ParseMoney understands.
// Blank rows are legal in the form; they are skipped on submit.
func validateOptionalBudget(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseMoney(s); err != nil {
		return fmt.Errorf("enter an amount like 1500 or 1500.50")
	}
	return nil
}

// clientFieldValues holds form-bound values for the client details wizard.
type clientFieldValues struct {
	name    string
	email   string
	phone   string
	website string
	status  string
	notes   string
}

func newClientFieldValues(f domain.ClientFields) *clientFieldValues {
	return &clientFieldValues{
		name:    f.Name,
		email:   f.Email,
		phone:   f.Phone,
		website: f.Website,
		status:  string(domain.ClientStatus(domain.CoalesceStr(string(f.Status), string(domain.ClientActive)))),
		notes:   f.Notes,
	}
}

func (v *clientFieldValues) fields() domain.ClientFields {
	return domain.ClientFields{
		Name:    strings.TrimSpace(v.name),
		Email:   strings.TrimSpace(v.email),
		Phone:   strings.TrimSpace(v.phone),
		Website: strings.TrimSpace(v.website),
		Status:  domain.ClientStatus(v.status),
		Notes:   v.notes,
	}
}

// wizardClientFields creates a huh form for the client's own attributes.
func wizardClientFields(v *clientFieldValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Client name").
				Value(&v.name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Email").
				Placeholder("optional").
				Value(&v.email),
			huh.NewInput().
				Title("Phone").
				Placeholder("optional").
				Value(&v.phone),
			huh.NewInput().
				Title("Website").
				Placeholder("optional").
				Value(&v.website),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Active", string(domain.ClientActive)),
					huh.NewOption("Inactive", string(domain.ClientInactive)),
				).
				Value(&v.status),
			huh.NewText().
				Title("Notes").
				Value(&v.notes),
		),
	).WithTheme(clientdeskHuhTheme()).WithShowHelp(false)
}

// wizardProjectRow creates a huh form for one project row of the client form.
func wizardProjectRow(name, budget *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Placeholder("Website redesign").
				Value(name),
			huh.NewInput().
				Title("Budget").
				Placeholder("1500.00").
				Value(budget).
				Validate(validateOptionalBudget),
		),
	).WithTheme(clientdeskHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(clientdeskHuhTheme()).WithShowHelp(false)
}
