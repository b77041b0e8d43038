package notify

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// LogSender only logs messages. Handy in development where no mail relay runs.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger.With("module", "notify")}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "message not delivered, logged instead",
		"to", msg.To(),
		"subject", msg.Subject(),
		"text", msg.Text(),
	)
	return nil
}
