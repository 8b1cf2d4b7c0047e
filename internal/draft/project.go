// Package draft holds the in-progress state of the client forms. Drafts are
// values: every operation returns a new draft and leaves the receiver intact.
package draft

import (
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// ProjectDraft is one project row of a client form. ID is empty for rows
// that have not been persisted.
type ProjectDraft struct {
	ID     string
	Name   string
	Budget string
}

// IsNew reports whether the row has no stored project behind it.
func (p ProjectDraft) IsNew() bool { return p.ID == "" }

// Valid reports whether the row has a non-empty name and a parseable budget.
func (p ProjectDraft) Valid() bool {
	if strings.TrimSpace(p.Name) == "" {
		return false
	}
	_, err := domain.ParseMoney(p.Budget)
	return err == nil
}

// Money returns the parsed budget.
func (p ProjectDraft) Money() (domain.Money, error) {
	return domain.ParseMoney(p.Budget)
}

func cloneProjects(ps []ProjectDraft) []ProjectDraft {
	out := make([]ProjectDraft, len(ps))
	copy(out, ps)
	return out
}

func validOnly(ps []ProjectDraft) []ProjectDraft {
	var out []ProjectDraft
	for _, p := range ps {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

func inRange(ps []ProjectDraft, i int) bool {
	return i >= 0 && i < len(ps)
}
