package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/listing"
)

// EmptyOverviewMessage is shown in place of rows when there are no clients.
const EmptyOverviewMessage = "No clients found. Add your first client to get started."

var columnTitles = map[listing.Column]string{
	listing.ColName:         "NAME",
	listing.ColEmail:        "EMAIL",
	listing.ColProjectCount: "PROJECTS",
	listing.ColTotalBudget:  "TOTAL BUDGET",
	listing.ColStatus:       "STATUS",
	listing.ColCreatedAt:    "CREATED",
}

// ColumnTitle returns the header text for col, with an arrow when col is the
// active sort key.
func ColumnTitle(col listing.Column, state listing.SortState) string {
	title := columnTitles[col]
	if !state.Active() || state.Column != col {
		return title
	}
	if state.Direction == listing.DirAsc {
		return title + " ↑"
	}
	return title + " ↓"
}

// OverviewHeaders returns the table headers for the overview in column order.
func OverviewHeaders(state listing.SortState) []string {
	cols := listing.Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = ColumnTitle(c, state)
	}
	return headers
}

// OverviewCells renders one overview row in column order.
func OverviewCells(r *domain.ClientOverview) []string {
	return []string{
		Bold(r.Name),
		OrDash(r.Email),
		fmt.Sprintf("%d", r.ProjectCount),
		FormatMoney(r.TotalBudget),
		ClientStatusPill(r.Status),
		FormatDate(r.CreatedAt),
	}
}

// FormatOverview renders rows, already in display order, as a table.
func FormatOverview(rows []*domain.ClientOverview, state listing.SortState) string {
	headers := OverviewHeaders(state)
	if len(rows) == 0 {
		return RenderTable(headers, [][]string{{Dim(EmptyOverviewMessage)}})
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, OverviewCells(r))
	}
	return RenderTable(headers, cells, AlignRight(2, 3))
}

// FormatSummary renders the dashboard totals line.
func FormatSummary(s listing.Summary) string {
	parts := []string{
		fmt.Sprintf("%s %s", Dim("Clients"), Bold(fmt.Sprintf("%d", s.TotalClients))),
		fmt.Sprintf("%s %s", Dim("Active"), StyleGreen.Render(fmt.Sprintf("%d", s.ActiveClients))),
		fmt.Sprintf("%s %s", Dim("Total budget"), Bold(FormatMoney(s.TotalBudget))),
	}
	return strings.Join(parts, Dim("  │  "))
}
