package api

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services are the use cases the HTTP API exposes.
type Services struct {
	Overview service.OverviewService
	Clients  service.ClientService
	Workflow service.ClientWorkflow
}

func NewRouter(svc Services, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &clientHandler{
		svc:       svc,
		responder: NewResponder(logger.With("component", "api")),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", h.getOverview())
		r.Post("/clients", h.createClient())
		r.Get("/clients/{clientID}", h.getClient())
		r.Put("/clients/{clientID}", h.updateClient())
		r.Delete("/clients/{clientID}", h.deleteClient())
		r.Delete("/projects/{projectID}", h.deleteProject())
	})
	return r
}
