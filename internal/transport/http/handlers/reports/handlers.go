package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/reports"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
)

type Handler struct {
	Reports *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Reports: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/distribution", h.handleDistribution)
		r.Get("/dashboard", h.handleDashboard)
	})
}

func (h *Handler) handleDistribution(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Reports.Distribution(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Reports.Dashboard(), middleware.GetRequestID(r.Context()))
}
