package settingshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/settings"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

type Handler struct {
	Settings *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{Settings: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Settings.Get(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var patch settings.Patch
	if !shared.DecodeJSON(w, r, &patch, requestID) {
		return
	}
	if patch.Company == nil && patch.Notifications == nil && patch.Security == nil && patch.System == nil {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "body", Reason: "must include at least one section"}})
		return
	}
	if patch.Company != nil {
		validator := shared.NewValidator()
		validator.Required("company.name", patch.Company.Name, "is required")
		if email := strings.TrimSpace(patch.Company.Email); email != "" && !strings.Contains(email, "@") {
			validator.Add("company.email", "must be a valid email address")
		}
		if validator.Reject(w, requestID) {
			return
		}
	}

	updated, err := h.Settings.Update(r.Context(), patch)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}
