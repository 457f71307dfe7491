package utils

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"shop_backoffice/internal/config"
)

var ErrMailDisabled = errors.New("smtp is not configured")

// Mailer sends HTML mail through the configured SMTP relay.
type Mailer struct {
	cfg config.SMTP
}

// NewMailer returns nil when no SMTP host is configured; a nil Mailer
// reports ErrMailDisabled.
func NewMailer(cfg config.SMTP) *Mailer {
	if cfg.Host == "" || cfg.From == "" {
		return nil
	}
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m == nil {
		return ErrMailDisabled
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	log.Println("📤 Sending e-mail to", to)
	return client.DialAndSendWithContext(ctx, msg)
}
