package service

import (
	"context"
	"fmt"

	"github.com/htdang/familylegacy/config"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single notification email. Implementations must respect
// the context deadline; a hung SMTP dialog must not hold a dispatch forever.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer returns an SMTP-backed mailer, or a mock mailer that only logs
// when SMTP is not configured. Both satisfy the same contract, so callers
// never branch on the mode.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST is not set. Mailer running in mock mode; notification emails are logged, not sent.")
		return &mockMailer{}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:   cfg.SMTP.From,
	}
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	// gomail has no context support, so the send runs in a goroutine and the
	// deadline is enforced here.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s failed: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s aborted: %w", to, ctx.Err())
	}
}

type mockMailer struct{}

func (m *mockMailer) Send(_ context.Context, to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("Mock email sent")
	return nil
}
