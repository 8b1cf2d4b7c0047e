package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatMoney renders an amount in en-US currency form, e.g. "$1,234.50".
func FormatMoney(m domain.Money) string {
	return fmt.Sprintf("$%s.%02d", humanize.Comma(m.Dollars()), m.Cents())
}

// FormatBudget renders a nullable project budget. NULL shows as a dim dash.
func FormatBudget(b *domain.Money) string {
	if b == nil {
		return Dim("-")
	}
	return FormatMoney(*b)
}

// FormatDate renders a calendar date such as "Jan 2, 2006".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006")
}

// OrDash returns s, or "-" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// StatusLabel capitalizes a stored status value: "not_completed" becomes
// "Not completed".
func StatusLabel(status string) string {
	if status == "" {
		return "-"
	}
	label := strings.ReplaceAll(status, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

// ClientStatusPill returns a colored status label for a client.
func ClientStatusPill(status domain.ClientStatus) string {
	switch status {
	case domain.ClientActive:
		return ClientStatusColor(status).Render("● " + StatusLabel(string(status)))
	case domain.ClientInactive:
		return ClientStatusColor(status).Render("○ " + StatusLabel(string(status)))
	default:
		return ClientStatusColor(status).Render(StatusLabel(string(status)))
	}
}

// ProjectStatusPill returns a colored status label for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ " + StatusLabel(string(status)))
	default:
		return StyleBlue.Render("○ " + StatusLabel(string(status)))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
