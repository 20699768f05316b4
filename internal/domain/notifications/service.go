package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"corecrew/internal/domain/settings"
	"corecrew/internal/platform/events"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type SettingsSource interface {
	Get() settings.Settings
}

// Message is one outgoing notification derived from a change event.
type Message struct {
	Type    string
	Subject string
	Body    string
}

// Service turns change events into emails, honouring the notification
// toggles in settings.
type Service struct {
	Mailer      Mailer
	settings    SettingsSource
	logger      *slog.Logger
	DefaultFrom string
	Recipient   string
}

func New(mailer Mailer, src SettingsSource, from, recipient string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if from == "" {
		from = "no-reply@corecrew.com"
	}
	return &Service{Mailer: mailer, settings: src, logger: logger, DefaultFrom: from, Recipient: recipient}
}

// Compose returns the message for evt, or false when evt does not notify.
func Compose(evt events.Event) (Message, bool) {
	switch evt.Collection {
	case "employees":
		if evt.Action == events.ActionCreated {
			return Message{TypeEmployeeAdded, "New employee: " + evt.Summary, fmt.Sprintf("%s was added to the directory (id %s).", evt.Summary, evt.EntityID)}, true
		}
	case "leaveRequests":
		switch evt.Action {
		case events.ActionCreated:
			return Message{TypeLeaveSubmitted, "Leave request submitted", fmt.Sprintf("Leave request %s awaits approval: %s.", evt.EntityID, evt.Summary)}, true
		case events.ActionApproved:
			return Message{TypeLeaveApproved, "Leave request approved", fmt.Sprintf("Leave request %s was approved: %s.", evt.EntityID, evt.Summary)}, true
		case events.ActionRejected:
			return Message{TypeLeaveRejected, "Leave request rejected", fmt.Sprintf("Leave request %s was rejected: %s.", evt.EntityID, evt.Summary)}, true
		}
	case "performanceReviews":
		if evt.Action == events.ActionCreated || evt.Action == events.ActionUpdated {
			return Message{TypeReviewRecorded, "Performance review " + evt.Action, fmt.Sprintf("Review %s for %s was %s.", evt.EntityID, evt.Summary, evt.Action)}, true
		}
	case "payrollData":
		if evt.Action == events.ActionProcessed {
			return Message{TypePayrollProcessed, "Payroll line paid", fmt.Sprintf("Payroll line %s is now %s.", evt.EntityID, evt.Summary)}, true
		}
	case "feedbacks":
		if evt.Action == events.ActionCreated {
			return Message{TypeFeedbackReceived, "New feedback received", fmt.Sprintf("Feedback %s was recorded by %s.", evt.EntityID, evt.Summary)}, true
		}
	}
	return Message{}, false
}

// Enabled reports whether the settings allow messages of type mtype.
func Enabled(n settings.Notifications, mtype string) bool {
	if !n.EmailNotifications {
		return false
	}
	switch mtype {
	case TypeEmployeeAdded:
		return n.NewEmployees
	case TypeLeaveSubmitted, TypeLeaveApproved, TypeLeaveRejected:
		return n.LeaveApprovals
	case TypeReviewRecorded:
		return n.PerformanceReviews
	default:
		return true
	}
}

// Notify sends the message for evt when it applies. Delivery failures are
// logged and swallowed.
func (s *Service) Notify(ctx context.Context, evt events.Event) bool {
	if s.Mailer == nil || s.Recipient == "" {
		return false
	}
	msg, ok := Compose(evt)
	if !ok {
		return false
	}
	if s.settings != nil && !Enabled(s.settings.Get().Notifications, msg.Type) {
		return false
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, s.Recipient, msg.Subject, msg.Body); err != nil {
		s.logger.Warn("notification email send failed", "type", msg.Type, "err", err)
		return false
	}
	return true
}

// Run notifies for events from ch until it is closed or ctx is done.
func (s *Service) Run(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			s.Notify(ctx, evt)
		}
	}
}
