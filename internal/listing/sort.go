// Package listing orders and summarizes client overview rows for display.
package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

type Column string

const (
	ColName         Column = "name"
	ColEmail        Column = "email"
	ColProjectCount Column = "project_count"
	ColTotalBudget  Column = "total_budget"
	ColStatus       Column = "status"
	ColCreatedAt    Column = "created_at"
)

// Columns lists the sortable columns in display order.
func Columns() []Column {
	return []Column{ColName, ColEmail, ColProjectCount, ColTotalBudget, ColStatus, ColCreatedAt}
}

// ParseColumn accepts a column key such as "total_budget".
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Columns(), c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown sort column %q (want one of %s)", s, joinColumns())
}

func joinColumns() string {
	names := make([]string, 0, len(Columns()))
	for _, c := range Columns() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

type Direction int

const (
	DirNone Direction = iota
	DirAsc
	DirDesc
)

func (d Direction) String() string {
	switch d {
	case DirAsc:
		return "asc"
	case DirDesc:
		return "desc"
	}
	return "none"
}

// FirstDirection is the direction a column sorts in when first selected.
// Numeric and date columns start descending, text columns ascending.
func (c Column) FirstDirection() Direction {
	switch c {
	case ColProjectCount, ColTotalBudget, ColCreatedAt:
		return DirDesc
	}
	return DirAsc
}

// SortState is the single active sort key of the client table.
type SortState struct {
	Column    Column
	Direction Direction
}

// DefaultSort orders newest clients first.
func DefaultSort() SortState {
	return SortState{Column: ColCreatedAt, Direction: DirDesc}
}

// Toggle advances the sort for a header press on c: first direction,
// opposite direction, none. Selecting another column starts it over.
func (s SortState) Toggle(c Column) SortState {
	first := c.FirstDirection()
	if s.Column != c || s.Direction == DirNone {
		return SortState{Column: c, Direction: first}
	}
	if s.Direction == first {
		return SortState{Column: c, Direction: opposite(first)}
	}
	return SortState{Column: c, Direction: DirNone}
}

func opposite(d Direction) Direction {
	if d == DirAsc {
		return DirDesc
	}
	return DirAsc
}

// Active reports whether rows are reordered at all.
func (s SortState) Active() bool {
	return s.Direction != DirNone && s.Column != ""
}

// Apply returns rows reordered by s. The input slice is left untouched and
// equal keys keep their fetch order.
func (s SortState) Apply(rows []*domain.ClientOverview) []*domain.ClientOverview {
	out := slices.Clone(rows)
	if !s.Active() {
		return out
	}
	slices.SortStableFunc(out, func(a, b *domain.ClientOverview) int {
		c := compare(s.Column, a, b)
		if s.Direction == DirDesc {
			return -c
		}
		return c
	})
	return out
}

func compare(col Column, a, b *domain.ClientOverview) int {
	switch col {
	case ColName:
		return cmpText(a.Name, b.Name)
	case ColEmail:
		return cmpText(a.Email, b.Email)
	case ColStatus:
		return cmpText(string(a.Status), string(b.Status))
	case ColProjectCount:
		return cmp.Compare(a.ProjectCount, b.ProjectCount)
	case ColTotalBudget:
		return cmp.Compare(a.TotalBudget, b.TotalBudget)
	case ColCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

func cmpText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
