// Package notify delivers background-engine events (executed
// auto-trades, fired price alerts, screen summaries) to the user.
package notify

import (
	"context"
	"log"
)

// Notifier delivers one message. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes notifications to the process log. It is the
// default when no external channel is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Notify(_ context.Context, text string) error {
	log.Printf("[INFO] notify: %s", text)
	return nil
}
