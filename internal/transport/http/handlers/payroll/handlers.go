package payrollhandler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/payroll"
	"corecrew/internal/domain/settings"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

// CompanySource supplies the issuer printed on payslips.
type CompanySource interface {
	Get() settings.Settings
}

type Handler struct {
	Ledger   *payroll.Ledger
	Settings CompanySource
}

func NewHandler(ledger *payroll.Ledger, company CompanySource) *Handler {
	return &Handler{Ledger: ledger, Settings: company}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/summary", h.handleSummary)
		r.Get("/export", h.handleExport)
		r.Post("/process", h.handleProcess)
		r.Post("/processing/begin", h.handleBeginProcessing)
		r.Post("/processing/complete", h.handleCompleteProcessing)
		r.Post("/generate", h.handleGenerate)
		r.Route("/{itemID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/payslip", h.handlePayslip)
		})
	})
}

type idsPayload struct {
	IDs []int `json:"ids"`
}

type generatePayload struct {
	Period string `json:"period"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	if period := strings.TrimSpace(query.Get("period")); period != "" {
		api.Success(w, h.Ledger.ListForPeriod(period), requestID)
		return
	}
	employeeID, present, ok := shared.OptionalIntQuery(w, r, "employeeId", requestID)
	if !ok {
		return
	}
	if present {
		api.Success(w, h.Ledger.ListForEmployee(employeeID), requestID)
		return
	}
	api.Success(w, h.Ledger.List(), requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "itemID", requestID)
	if !ok {
		return
	}
	item, err := h.Ledger.Get(id)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, item, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload payroll.NewItem
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	validator := shared.NewValidator()
	validator.Reference("employeeId", payload.EmployeeID)
	validator.Required("payPeriod", payload.PayPeriod, "is required")
	validator.OneOf("status", payload.Status, payroll.Statuses)
	if validator.Reject(w, requestID) {
		return
	}

	item, err := h.Ledger.Add(r.Context(), payload)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Created(w, item, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "itemID", requestID)
	if !ok {
		return
	}
	var patch payroll.ItemPatch
	if !shared.DecodeJSON(w, r, &patch, requestID) {
		return
	}
	item, err := h.Ledger.Update(r.Context(), id, patch)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, item, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "itemID", requestID)
	if !ok {
		return
	}
	if err := h.Ledger.Delete(r.Context(), id); err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) decodeIDs(w http.ResponseWriter, r *http.Request, requestID string) ([]int, bool) {
	var payload idsPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return nil, false
	}
	if len(payload.IDs) == 0 {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "ids", Reason: "must list at least one payroll id"}})
		return nil, false
	}
	return payload.IDs, true
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ids, ok := h.decodeIDs(w, r, requestID)
	if !ok {
		return
	}
	result, err := h.Ledger.ProcessBatch(r.Context(), ids)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleBeginProcessing(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ids, ok := h.decodeIDs(w, r, requestID)
	if !ok {
		return
	}
	result, err := h.Ledger.BeginProcessing(r.Context(), ids)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleCompleteProcessing(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ids, ok := h.decodeIDs(w, r, requestID)
	if !ok {
		return
	}
	result, err := h.Ledger.CompleteProcessing(r.Context(), ids)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload generatePayload
	if !shared.DecodeOptionalJSON(w, r, &payload, requestID) {
		return
	}
	period := strings.TrimSpace(payload.Period)
	if period == "" {
		period = h.Ledger.CurrentPeriod()
	}
	result, err := h.Ledger.GenerateForPeriod(r.Context(), period)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	if len(result.Created) > 0 {
		api.Created(w, result, requestID)
		return
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	api.Success(w, map[string]any{
		"summary": h.Ledger.Summarize(period),
		"periods": h.Ledger.Periods(),
	}, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := shared.IntParam(w, r, "itemID", requestID)
	if !ok {
		return
	}
	item, err := h.Ledger.Get(id)
	if err != nil {
		shared.FailDomain(w, r, err, requestID)
		return
	}
	issuer := payroll.Issuer{}
	if h.Settings != nil {
		company := h.Settings.Get().Company
		issuer = payroll.Issuer{Name: company.Name, Address: company.Address, Email: company.Email, Phone: company.Phone}
	}

	var buf bytes.Buffer
	if err := payroll.RenderPayslip(&buf, item, issuer); err != nil {
		slog.Warn("payslip render failed", "itemId", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"payslip-%d.pdf\"", item.ID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	items := h.Ledger.List()
	filename := "payroll.xlsx"
	if period != "" {
		items = h.Ledger.ListForPeriod(period)
		filename = "payroll-" + strings.ReplaceAll(strings.ToLower(period), " ", "-") + ".xlsx"
	}

	var buf bytes.Buffer
	if err := payroll.WriteWorkbook(&buf, items); err != nil {
		slog.Warn("payroll export failed", "period", period, "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build payroll export", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
