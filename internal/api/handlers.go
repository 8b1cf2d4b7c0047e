package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/draft"
	"github.com/go-chi/chi/v5"
)

type clientHandler struct {
	svc       Services
	responder Responder
}

func (h *clientHandler) getOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.svc.Overview.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, "load clients", err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, toOverviewResponse(rows))
	}
}

func (h *clientHandler) getClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clientID")
		client, err := h.svc.Clients.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, "load client", err)
			return
		}
		projects, err := h.svc.Clients.ListProjects(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, "load client", err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, clientDetailResponse{
			Client:   toClientJSON(client),
			Projects: toProjectsJSON(projects),
		})
	}
}

func (h *clientHandler) createClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, "add client", err)
			return
		}

		d := draft.NewCreateDraft().WithClient(req.toDomain())
		for i, p := range req.Projects {
			if i > 0 {
				d = d.AddProject()
			}
			d = d.SetProjectName(i, p.Name).SetProjectBudget(i, p.Budget)
		}

		res, err := h.svc.Workflow.Create(r.Context(), d)
		if err != nil {
			var clientID string
			if res != nil && res.Client != nil {
				clientID = res.Client.ID
			}
			h.responder.writeError(w, "add client", err, clientID)
			return
		}
		h.responder.WriteJSON(w, http.StatusCreated, clientDetailResponse{
			Client:   toClientJSON(res.Client),
			Projects: toProjectsJSON(res.Projects),
		})
	}
}

func (h *clientHandler) updateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clientID")
		var req editClientRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, "update client", err)
			return
		}

		ctx := r.Context()
		d, err := h.svc.Workflow.OpenEdit(ctx, id)
		if err != nil {
			h.responder.WriteError(w, "update client", err)
			return
		}
		fields := req.toDomain()
		if fields.Status == "" {
			// An omitted status keeps the stored one.
			fields.Status = d.Client.Status
		}
		d = d.WithClient(fields)

		for _, pid := range req.RemoveProjects {
			i := indexOfProject(d, pid)
			if i < 0 {
				h.responder.WriteError(w, "delete project", domain.NewValidationError("remove_projects", "project "+pid+" does not belong to this client"))
				return
			}
			if d, err = h.svc.Workflow.RemoveProject(ctx, d, i); err != nil {
				h.responder.WriteError(w, "delete project", err)
				return
			}
		}

		for _, p := range req.Projects {
			i := len(d.Projects())
			if p.ID != "" {
				if i = indexOfProject(d, p.ID); i < 0 {
					h.responder.WriteError(w, "update client", domain.NewValidationError("projects", "project "+p.ID+" does not belong to this client"))
					return
				}
			} else {
				d = d.AddProject()
			}
			d = d.SetProjectName(i, p.Name).SetProjectBudget(i, p.Budget)
		}

		if _, err := h.svc.Workflow.SubmitEdit(ctx, d); err != nil {
			h.responder.WriteError(w, "update client", err)
			return
		}
		client, err := h.svc.Clients.Get(ctx, id)
		if err != nil {
			h.responder.WriteError(w, "update client", err)
			return
		}
		projects, err := h.svc.Clients.ListProjects(ctx, id)
		if err != nil {
			h.responder.WriteError(w, "update client", err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, clientDetailResponse{
			Client:   toClientJSON(client),
			Projects: toProjectsJSON(projects),
		})
	}
}

func (h *clientHandler) deleteClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.Clients.Delete(r.Context(), chi.URLParam(r, "clientID")); err != nil {
			h.responder.WriteError(w, "delete client", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *clientHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.Clients.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
			h.responder.WriteError(w, "delete project", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func indexOfProject(d draft.EditDraft, id string) int {
	for i, p := range d.Projects() {
		if p.ID == id {
			return i
		}
	}
	return -1
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.NewValidationError("body", "request body too large")
		}
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}
