package employeeshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/employees"
	"corecrew/internal/domain/feedback"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

type Handler struct {
	Directory *employees.Directory
	Feedback  *feedback.Log
}

func NewHandler(directory *employees.Directory, feedbackLog *feedback.Log) *Handler {
	return &Handler{Directory: directory, Feedback: feedbackLog}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/feedback", h.handleFeedback)
			r.Get("/feedback/stats", h.handleFeedbackStats)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list := h.Directory.List()
	department := strings.TrimSpace(r.URL.Query().Get("department"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if department == "" && status == "" && search == "" {
		api.Success(w, list, middleware.GetRequestID(r.Context()))
		return
	}
	filtered := make([]employees.Employee, 0, len(list))
	for _, e := range list {
		if department != "" && !strings.EqualFold(e.Department, department) {
			continue
		}
		if status != "" && !strings.EqualFold(e.Status, status) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name+" "+e.Email+" "+e.Position), search) {
			continue
		}
		filtered = append(filtered, e)
	}
	api.Success(w, filtered, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	emp, err := h.Directory.Get(id)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employees.NewEmployee
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	if strings.TrimSpace(payload.Name) == "" {
		validator.Required("firstName", payload.FirstName, "is required")
		validator.Required("lastName", payload.LastName, "is required")
	}
	validator.Required("email", payload.Email, "is required")
	validator.Email("email", payload.Email)
	validator.OneOf("status", payload.Status, employees.Statuses)
	if strings.TrimSpace(payload.JoinDate) != "" {
		validator.Date("joinDate", payload.JoinDate)
	}
	if validator.Reject(w, requestID) {
		return
	}
	payload.JoinDate = shared.NormalizeDate(payload.JoinDate)

	created, err := h.Directory.Add(r.Context(), payload)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	var patch employees.Patch
	if !shared.DecodeJSON(w, r, &patch, requestID) {
		return
	}
	validator := shared.NewValidator()
	if patch.Email != nil {
		validator.Required("email", *patch.Email, "cannot be blank")
		validator.Email("email", *patch.Email)
	}
	if patch.Status != nil {
		validator.OneOf("status", *patch.Status, employees.Statuses)
	}
	if patch.JoinDate != nil && strings.TrimSpace(*patch.JoinDate) != "" {
		validator.Date("joinDate", *patch.JoinDate)
	}
	if validator.Reject(w, requestID) {
		return
	}
	if patch.JoinDate != nil {
		normalized := shared.NormalizeDate(*patch.JoinDate)
		patch.JoinDate = &normalized
	}

	updated, err := h.Directory.Update(r.Context(), id, patch)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	if err := h.Directory.Delete(r.Context(), id); err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	api.Success(w, h.Feedback.ListForEmployee(id), requestID)
}

func (h *Handler) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	api.Success(w, h.Feedback.Stats(id), requestID)
}
