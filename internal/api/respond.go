package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/service"
)

type Responder struct {
	logger *slog.Logger
}

func NewResponder(logger *slog.Logger) Responder {
	return Responder{logger: logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("error marshaling response data", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Error("error writing response", "error", err)
	}
}

// WriteError maps err to a status code. Validation errors keep their
// message; store errors get the generic alert for action.
func (r Responder) WriteError(w http.ResponseWriter, action string, err error) {
	r.writeError(w, action, err, "")
}

func (r Responder) writeError(w http.ResponseWriter, action string, err error, clientID string) {
	resp := errorResponse{Error: service.Alert(action, err), ClientID: clientID}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.Field = ve.Field
		r.WriteJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, repository.ErrNotFound):
		r.WriteJSON(w, http.StatusNotFound, resp)
	default:
		r.logger.Error("request failed", "action", action, "error", err)
		r.WriteJSON(w, http.StatusInternalServerError, resp)
	}
}
