package notifier

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// mailSender is the part of gomail's dialer the notifier uses, split
// out so tests can run without an SMTP server.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends the run summary as an HTML email over SMTP.
type EmailNotifier struct {
	From       string
	Recipients []string

	sender mailSender
	logger zerolog.Logger
}

// NewEmailNotifier creates an SMTP-backed notifier. Username and
// password may be empty for unauthenticated relays.
func NewEmailNotifier(host string, port int, username, password, from string, recipients []string, logger zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		From:       from,
		Recipients: recipients,
		sender:     gomail.NewDialer(host, port, username, password),
		logger:     logger,
	}
}

// SendNotification sends the body to all recipients. An empty recipient
// list is a no-op treated as success.
func (e *EmailNotifier) SendNotification(ctx context.Context, subject, body string) error {
	if len(e.Recipients) == 0 {
		e.logger.Debug().Msg("no email recipients configured, skipping notification")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return &NotificationError{Transport: "email", Err: err}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", e.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := e.sender.DialAndSend(m); err != nil {
		return &NotificationError{Transport: "email", Err: err}
	}

	e.logger.Info().Strs("recipients", e.Recipients).Str("subject", subject).Msg("summary email sent")
	return nil
}

var _ Notifier = (*EmailNotifier)(nil)
