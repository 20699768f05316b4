package leavehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/employees"
	"corecrew/internal/domain/leave"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

// EmployeeLookup resolves the requester so the stored name matches the directory.
type EmployeeLookup interface {
	Get(id int) (employees.Employee, error)
}

type Handler struct {
	Register  *leave.Register
	Employees EmployeeLookup
}

func NewHandler(register *leave.Register, lookup EmployeeLookup) *Handler {
	return &Handler{Register: register, Employees: lookup}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSubmit)
		r.Route("/{requestID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/approve", h.handleApprove)
			r.Post("/reject", h.handleReject)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	list := h.Register.List()
	employeeID, present, ok := shared.OptionalIntQuery(w, r, "employeeId", requestID)
	if !ok {
		return
	}
	if present {
		list = h.Register.ListForEmployee(employeeID)
	}
	if status := strings.TrimSpace(query.Get("status")); status != "" {
		filtered := make([]leave.Request, 0, len(list))
		for _, req := range list {
			if strings.EqualFold(req.Status, status) {
				filtered = append(filtered, req)
			}
		}
		list = filtered
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "requestID", requestID)
	if !ok {
		return
	}
	req, err := h.Register.Get(id)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, req, requestID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload leave.NewRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	validator := shared.NewValidator()
	validator.Reference("employeeId", payload.EmployeeID)
	validator.OneOf("leaveType", payload.LeaveType, leave.Types)
	start, startOK := validator.Date("startDate", payload.StartDate)
	end, endOK := validator.Date("endDate", payload.EndDate)
	if startOK && endOK {
		validator.DateOrder("startDate", start, "endDate", end)
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
	}

	payload.StartDate = start.Format(shared.DateLayout)
	payload.EndDate = end.Format(shared.DateLayout)
	created, err := h.Register.Submit(r.Context(), payload)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Register.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Register.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(context.Context, int) (leave.Request, error)) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "requestID", requestID)
	if !ok {
		return
	}
	decided, err := fn(r.Context(), id)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, decided, requestID)
}
