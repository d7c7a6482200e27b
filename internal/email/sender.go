package email

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Sender delivers plain-text mail to a single recipient.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them.
// It is used when no mail provider is configured.
type LogSender struct{}

// NewLogSender returns a Sender that only logs.
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	log.Info("Email delivery disabled, logging message", "recipient", recipient, "subject", subject, "body", body)
	return nil
}
