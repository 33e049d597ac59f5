// Package mailer delivers verification emails over SMTP.
package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers a verification code to a recipient.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// SMTPSender sends mail through an SMTP relay using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) SendVerificationCode(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Unibook verification code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in a few minutes. If you did not request this, ignore this email.\n", code))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// NopSender discards mail. Used when SMTP is not configured, together with the
// dev code store.
type NopSender struct{}

func (NopSender) SendVerificationCode(context.Context, string, string) error { return nil }
