package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"corecrew/internal/domain/employees"
	"corecrew/internal/domain/feedback"
	"corecrew/internal/domain/leave"
	"corecrew/internal/domain/payroll"
	"corecrew/internal/domain/performance"
	"corecrew/internal/domain/settings"
	"corecrew/internal/transport/http/api"
)

var notFound = []error{
	employees.ErrEmployeeNotFound,
	feedback.ErrFeedbackNotFound,
	payroll.ErrPayrollItemNotFound,
	leave.ErrLeaveRequestNotFound,
	performance.ErrReviewNotFound,
}

var invalid = []error{
	employees.ErrInvalidStatus,
	feedback.ErrInvalidRating,
	payroll.ErrInvalidStatus,
	payroll.ErrEmptyPeriod,
	leave.ErrInvalidRange,
	leave.ErrInvalidDate,
	performance.ErrInvalidRating,
	performance.ErrInvalidStatus,
	performance.ErrInvalidProgress,
	settings.ErrInvalidSettings,
}

var conflict = []error{
	payroll.ErrInvalidTransition,
	leave.ErrInvalidTransition,
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// FailDomain maps a domain error onto the response envelope. Unknown errors
// are logged and reported as 500 without leaking their text.
func FailDomain(w http.ResponseWriter, r *http.Request, err error, requestID string) {
	switch {
	case matches(err, notFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case matches(err, invalid):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case matches(err, conflict):
		api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), requestID)
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID)
	}
}
