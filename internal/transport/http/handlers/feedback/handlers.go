package feedbackhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/feedback"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

type Handler struct {
	Log *feedback.Log
}

func NewHandler(log *feedback.Log) *Handler {
	return &Handler{Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/feedback", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/{feedbackID}/read", h.handleMarkRead)
	})
}

type createPayload struct {
	EmployeeID int    `json:"employeeId"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
	CreatedBy  string `json:"createdBy"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Log.List(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload createPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	validator.Reference("employeeId", payload.EmployeeID)
	validator.Required("message", payload.Message, "is required")
	validator.Required("createdBy", payload.CreatedBy, "is required")
	validator.Range("rating", payload.Rating, feedback.MinRating, feedback.MaxRating)
	if validator.Reject(w, requestID) {
		return
	}

	entry, err := h.Log.Add(r.Context(), payload.EmployeeID, payload.Rating, payload.Message, payload.CreatedBy)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Created(w, entry, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	entry, err := h.Log.MarkRead(r.Context(), chi.URLParam(r, "feedbackID"))
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, entry, requestID)
}
