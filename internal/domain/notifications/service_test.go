package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"corecrew/internal/domain/settings"
	"corecrew/internal/platform/events"
)

type sentMail struct {
	from, to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, from, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{from, to, subject, body})
	return nil
}

type staticSettings settings.Settings

func (s staticSettings) Get() settings.Settings { return settings.Settings(s) }

func TestNotifySendsForEnabledTypes(t *testing.T) {
	mailer := &recordingMailer{}
	svc := New(mailer, staticSettings(settings.Defaults()), "hr@corecrew.com", "admin@corecrew.com", nil)

	sent := svc.Notify(context.Background(), events.Event{Collection: "employees", Action: events.ActionCreated, EntityID: "4", Summary: "Ada Lovelace"})
	if !sent || len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %+v", mailer.sent)
	}
	mail := mailer.sent[0]
	if mail.from != "hr@corecrew.com" || mail.to != "admin@corecrew.com" || !strings.Contains(mail.subject, "Ada Lovelace") {
		t.Fatalf("unexpected email %+v", mail)
	}
}

func TestNotifyHonoursToggles(t *testing.T) {
	mailer := &recordingMailer{}
	doc := settings.Defaults()
	doc.Notifications.LeaveApprovals = false
	svc := New(mailer, staticSettings(doc), "", "admin@corecrew.com", nil)

	if svc.Notify(context.Background(), events.Event{Collection: "leaveRequests", Action: events.ActionApproved, EntityID: "1"}) {
		t.Fatal("expected leave notification suppressed")
	}
	doc.Notifications.EmailNotifications = false
	svc = New(mailer, staticSettings(doc), "", "admin@corecrew.com", nil)
	if svc.Notify(context.Background(), events.Event{Collection: "employees", Action: events.ActionCreated}) {
		t.Fatal("expected all notifications suppressed by master toggle")
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no emails, got %+v", mailer.sent)
	}
}

func TestNotifyIgnoresUnmappedEventsAndFailures(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc := New(mailer, nil, "", "admin@corecrew.com", nil)
	if svc.Notify(context.Background(), events.Event{Collection: "settings", Action: events.ActionUpdated}) {
		t.Fatal("expected settings change not to notify")
	}
	if svc.Notify(context.Background(), events.Event{Collection: "feedbacks", Action: events.ActionCreated}) {
		t.Fatal("expected failed send to report false")
	}
}

func TestComposeLeaveMessages(t *testing.T) {
	for action, want := range map[string]string{
		events.ActionCreated:  TypeLeaveSubmitted,
		events.ActionApproved: TypeLeaveApproved,
		events.ActionRejected: TypeLeaveRejected,
	} {
		msg, ok := Compose(events.Event{Collection: "leaveRequests", Action: action, EntityID: "2"})
		if !ok || msg.Type != want {
			t.Fatalf("%s: expected %s, got %+v", action, want, msg)
		}
	}
}
