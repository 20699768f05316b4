package jobshandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"corecrew/internal/domain/payroll"
	"corecrew/internal/platform/jobs"
	"corecrew/internal/transport/http/api"
	"corecrew/internal/transport/http/middleware"
	"corecrew/internal/transport/http/shared"
)

// Generator is the payroll operation the generate job runs.
type Generator interface {
	CurrentPeriod() string
	GenerateForPeriod(ctx context.Context, period string) (payroll.GenerateResult, error)
}

type Handler struct {
	Jobs    *jobs.Service
	Payroll Generator
}

func NewHandler(service *jobs.Service, generator Generator) *Handler {
	return &Handler{Jobs: service, Payroll: generator}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/payroll-generate", h.handlePayrollGenerate)
	})
}

// PayrollGenerate builds the job body shared by the scheduler and the
// manual trigger. An empty period resolves to the current one at run time.
func PayrollGenerate(g Generator, period string) jobs.RunFunc {
	return func(ctx context.Context) (any, error) {
		target := period
		if target == "" {
			target = g.CurrentPeriod()
		}
		return g.GenerateForPeriod(ctx, target)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, jobs.MaxRuns)
	jobType := strings.TrimSpace(r.URL.Query().Get("type"))
	runs := h.Jobs.List(jobType, 0)
	api.Paginated(w, shared.Window(runs, page), page.Meta(len(runs)), middleware.GetRequestID(r.Context()))
}

type generatePayload struct {
	Period string `json:"period"`
}

func (h *Handler) handlePayrollGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload generatePayload
	if !shared.DecodeOptionalJSON(w, r, &payload, requestID) {
		return
	}

	run, err := h.Jobs.RunNow(r.Context(), jobs.JobPayrollGenerate, PayrollGenerate(h.Payroll, strings.TrimSpace(payload.Period)))
	if err != nil {
		if run.ID == "" {
			shared.FailDomain(w, r, err, requestID)
			return
		}
		api.FailWithDetails(w, http.StatusInternalServerError, "job_failed", "payroll generation failed", run, requestID)
		return
	}
	api.Success(w, run, requestID)
}
