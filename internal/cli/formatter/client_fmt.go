package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// FormatClientDetail renders a client card followed by its projects.
func FormatClientDetail(c *domain.Client, projects []*domain.Project) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}

	b.WriteString(Bold(c.Name) + "\n\n")
	field("ID", c.ID)
	field("STATUS", ClientStatusPill(c.Status))
	field("EMAIL", OrDash(c.Email))
	field("PHONE", OrDash(c.Phone))
	field("WEBSITE", OrDash(c.Website))
	field("CREATED", FormatDate(c.CreatedAt))
	if strings.TrimSpace(c.Notes) != "" {
		b.WriteString("\n" + StyleFg.Render(c.Notes) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatProjects(projects))
	return RenderBox("Client", strings.TrimRight(b.String(), "\n"))
}

// FormatProjects renders a client's projects as a table.
func FormatProjects(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "BUDGET", "STATUS"}
	if len(projects) == 0 {
		return RenderTable(headers, [][]string{{Dim("No projects.")}})
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.Name,
			FormatBudget(p.Budget),
			ProjectStatusPill(p.Status),
		})
	}
	return RenderTable(headers, rows, AlignRight(2))
}

// FormatTasks renders a project's tasks as a table.
func FormatTasks(tasks []*domain.Task) string {
	headers := []string{"ID", "NAME", "STATUS", "PRIORITY"}
	if len(tasks) == 0 {
		return RenderTable(headers, [][]string{{Dim("No tasks.")}})
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Name,
			StatusLabel(string(t.Status)),
			StatusLabel(string(t.Priority)),
		})
	}
	return RenderTable(headers, rows)
}
