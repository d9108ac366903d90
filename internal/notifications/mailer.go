package notifications

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/logger"
)

// Mailer is the delivery surface services depend on.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through the configured SMTP relay.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	logg *logger.Logger
}

// NewSMTPMailer builds a mailer from SMTP credentials.
func NewSMTPMailer(cfg config.SMTPConfig, logg *logger.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logg: logg}
}

// Send delivers a single HTML message. Dialing happens per send; the
// relay connection is not worth pooling at current volumes.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromMail, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	if m.logg != nil {
		m.logg.Info(m.logg.WithField(ctx, "to", to), "email delivered")
	}
	return nil
}
