package mailer

import (
	"context"
	"log/slog"
	"strings"
)

// Sender delivers a rendered Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// LogSender writes messages to a logger instead of delivering them.
// It stands in for a provider in development.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, email *Email) error {
	s.log.InfoContext(ctx, "email not sent, no provider configured",
		slog.String("to", strings.Join(email.To, ", ")),
		slog.String("subject", email.Subject),
		slog.String("reply_to", email.ReplyTo),
		slog.Int("html_bytes", len(email.HTML)),
	)
	return nil
}
