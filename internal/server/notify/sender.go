package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"gopkg.in/gomail.v2"
)

// Sender delivers a message. Implementations make a single attempt; callers
// decide what a failure means.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the implementation named by cfg.MailTransport.
func NewSender(ctx context.Context, cfg *config.Config, logger logging.Logger) (Sender, error) {
	switch cfg.MailTransport {
	case config.MailTransportSMTP:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom), nil
	case config.MailTransportS3:
		return NewS3DropSender(ctx, cfg)
	case config.MailTransportLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
}

// buildMessage renders msg as a multipart email with a plain text body and an
// HTML alternative.
func buildMessage(from string, msg Message) (*gomail.Message, error) {
	html, err := msg.HTML()
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To())
	m.SetHeader("Subject", msg.Subject())
	m.SetBody("text/plain", msg.Text())
	m.AddAlternative("text/html", html)

	return m, nil
}
