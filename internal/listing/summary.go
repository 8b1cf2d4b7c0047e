package listing

import "github.com/alexanderramin/clientdesk/internal/domain"

// Summary holds the dashboard header figures.
type Summary struct {
	TotalClients  int
	ActiveClients int
	TotalBudget   domain.Money
}

func Summarize(rows []*domain.ClientOverview) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalClients++
		if r.Status == domain.ClientActive {
			s.ActiveClients++
		}
		s.TotalBudget += r.TotalBudget
	}
	return s
}
