package performancehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/employees"
	"corecrew/internal/domain/performance"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

// EmployeeLookup fills the denormalised employee fields on new reviews.
type EmployeeLookup interface {
	Get(id int) (employees.Employee, error)
}

type Handler struct {
	Reviews   *performance.Service
	Employees EmployeeLookup
}

func NewHandler(reviews *performance.Service, lookup EmployeeLookup) *Handler {
	return &Handler{Reviews: reviews, Employees: lookup}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.handleList)
			r.Post("/", h.handleCreate)
			r.Route("/{reviewID}", func(r chi.Router) {
				r.Get("/", h.handleGet)
				r.Put("/", h.handleUpdate)
				r.Delete("/", h.handleDelete)
			})
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, present, ok := shared.OptionalIntQuery(w, r, "employeeId", requestID)
	if !ok {
		return
	}
	if !present {
		api.Success(w, h.Reviews.List(), requestID)
		return
	}
	api.Success(w, h.Reviews.ListForEmployee(employeeID), requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "reviewID", requestID)
	if !ok {
		return
	}
	review, err := h.Reviews.Get(id)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, review, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload performance.NewReview
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	validator := shared.NewValidator()
	validator.Reference("employeeId", payload.EmployeeID)
	validator.Range("rating", payload.Rating, performance.MinRating, performance.MaxRating)
	validator.OneOf("status", payload.Status, performance.Statuses)
	if strings.TrimSpace(payload.ReviewDate) != "" {
		validator.Date("reviewDate", payload.ReviewDate)
	}
	if validator.Reject(w, requestID) {
		return
	}

	if h.Employees != nil {
		emp, err := h.Employees.Get(payload.EmployeeID)
		if err != nil {
			shared.FailDomain(w, r, err, requestID)
			return
		}
		payload.EmployeeName = emp.Name
		payload.Department = emp.Department
		if payload.Position == "" {
			payload.Position = emp.Position
		}
	}

	review, err := h.Reviews.Add(r.Context(), payload)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Created(w, review, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "reviewID", requestID)
	if !ok {
		return
	}
	var patch performance.Patch
	if !shared.DecodeJSON(w, r, &patch, requestID) {
		return
	}
	review, err := h.Reviews.Update(r.Context(), id, patch)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, review, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "reviewID", requestID)
	if !ok {
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Reviews.Summary(), middleware.GetRequestID(r.Context()))
}
