// Package notify delivers operator-facing messages such as the periodic report.
package notify

import (
	"context"
	"log"
)

// Sender delivers a preformatted HTML message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// LogSender writes messages to the process log. It is used when no chat
// transport is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, text string) error {
	log.Printf("[info] report:\n%s", text)
	return nil
}
