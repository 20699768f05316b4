// Package email delivers notification mail over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"corecrew/internal/domain/notifications"
	"corecrew/internal/platform/config"
)

const dialTimeout = 10 * time.Second

// New returns an SMTP mailer, or a mailer that only logs when email is
// disabled or no host is configured.
func New(cfg config.Config, logger *slog.Logger) notifications.Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{logger: logger}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		addr:     net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		startTLS: cfg.SMTPUseTLS,
		now:      time.Now,
	}
}

type noopMailer struct {
	logger *slog.Logger
}

func (m noopMailer) Send(_ context.Context, _, to, subject, _ string) error {
	m.logger.Debug("email suppressed", "to", to, "subject", subject)
	return nil
}

type smtpMailer struct {
	host     string
	addr     string
	user     string
	password string
	startTLS bool
	now      func() time.Time
}

// Send delivers one message. to may hold several comma separated addresses.
func (s *smtpMailer) Send(ctx context.Context, from, to, subject, body string) error {
	recipients := splitRecipients(to)
	if len(recipients) == 0 {
		return nil
	}
	conn, err := (&net.Dialer{Timeout: dialTimeout}).DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", s.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := s.authenticate(client); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp sender %s: %w", from, err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp recipient %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	_, writeErr := w.Write(buildMessage(from, strings.Join(recipients, ", "), subject, body, s.now()))
	if err := errors.Join(writeErr, w.Close()); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	return client.Quit()
}

func (s *smtpMailer) authenticate(client *smtp.Client) error {
	if s.startTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if s.user == "" {
		return nil
	}
	if err := client.Auth(smtp.PlainAuth("", s.user, s.password, s.host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	return nil
}

func splitRecipients(to string) []string {
	var out []string
	for _, part := range strings.Split(to, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// buildMessage renders a plain text message with CRLF line endings.
func buildMessage(from, to, subject, body string, at time.Time) []byte {
	var b strings.Builder
	header := func(name, value string) {
		b.WriteString(name + ": " + value + "\r\n")
	}
	header("From", from)
	header("To", to)
	header("Subject", mime.QEncoding.Encode("utf-8", subject))
	header("Date", at.Format(time.RFC1123Z))
	header("Message-ID", "<"+uuid.NewString()+"@corecrew>")
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	b.WriteString("\r\n")
	body = strings.ReplaceAll(body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
