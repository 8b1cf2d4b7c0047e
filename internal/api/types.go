package api

import (
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/listing"
)

type clientJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type projectJSON struct {
	ID       string  `json:"id"`
	ClientID string  `json:"client_id"`
	Name     string  `json:"name"`
	Budget   *string `json:"budget"`
	Status   string  `json:"status"`
}

type overviewRowJSON struct {
	clientJSON
	ProjectCount int    `json:"project_count"`
	TotalBudget  string `json:"total_budget"`
}

type summaryJSON struct {
	TotalClients  int    `json:"total_clients"`
	ActiveClients int    `json:"active_clients"`
	TotalBudget   string `json:"total_budget"`
}

type overviewResponse struct {
	Clients []overviewRowJSON `json:"clients"`
	Summary summaryJSON       `json:"summary"`
}

type clientDetailResponse struct {
	Client   clientJSON    `json:"client"`
	Projects []projectJSON `json:"projects"`
}

type clientFieldsJSON struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

func (f clientFieldsJSON) toDomain() domain.ClientFields {
	return domain.ClientFields{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Website: f.Website,
		Status:  domain.ClientStatus(f.Status),
		Notes:   f.Notes,
	}
}

type projectInput struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Budget string `json:"budget"`
}

type createClientRequest struct {
	clientFieldsJSON
	Projects []projectInput `json:"projects"`
}

// editClientRequest lists project rows to change or add. Stored projects
// not mentioned keep their values.
type editClientRequest struct {
	clientFieldsJSON
	Projects       []projectInput `json:"projects"`
	RemoveProjects []string       `json:"remove_projects"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	ClientID string `json:"client_id,omitempty"`
}

func toClientJSON(c *domain.Client) clientJSON {
	return clientJSON{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Website:   c.Website,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toProjectJSON(p *domain.Project) projectJSON {
	out := projectJSON{ID: p.ID, ClientID: p.ClientID, Name: p.Name, Status: string(p.Status)}
	if p.Budget != nil {
		s := p.Budget.String()
		out.Budget = &s
	}
	return out
}

func toProjectsJSON(ps []*domain.Project) []projectJSON {
	out := make([]projectJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectJSON(p))
	}
	return out
}

func toOverviewResponse(rows []*domain.ClientOverview) overviewResponse {
	out := overviewResponse{Clients: make([]overviewRowJSON, 0, len(rows))}
	for _, r := range rows {
		out.Clients = append(out.Clients, overviewRowJSON{
			clientJSON:   toClientJSON(&r.Client),
			ProjectCount: r.ProjectCount,
			TotalBudget:  r.TotalBudget.String(),
		})
	}
	s := listing.Summarize(rows)
	out.Summary = summaryJSON{
		TotalClients:  s.TotalClients,
		ActiveClients: s.ActiveClients,
		TotalBudget:   s.TotalBudget.String(),
	}
	return out
}
