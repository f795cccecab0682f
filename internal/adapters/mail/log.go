package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer writes the link to the log instead of sending anything. Used
// when no SMTP host is configured, typically in development.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendVerificationLink(_ context.Context, to, link string) error {
	m.log.Info("verification mail (log only; configure SMTP_HOST for real email)",
		zap.String("to", to),
		zap.String("link", link),
	)
	return nil
}
