package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPSender sends mail through an SMTP relay. Port 465 uses implicit TLS.
type SMTPSender struct {
	from        string
	dialAndSend func(m ...*gomail.Message) error
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	dialer := gomail.NewDialer(host, port, username, password)
	return &SMTPSender{
		from:        from,
		dialAndSend: dialer.DialAndSend,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := buildMessage(s.from, msg)
	if err != nil {
		return err
	}

	if err := s.dialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
