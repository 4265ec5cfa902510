package smtp

import (
	"context"
	"fmt"

	"github.com/go-api-signup/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailer struct {
	from   string
	dialer dialer
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		from:   cfg.SMTPFrom,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

func (m *mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	// gomail has no context support; run the send and give up when ctx ends.
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send email to %s: %w", to, ctx.Err())
	}
}
