// Package notify delivers user-facing failure messages. Notifications are
// one-way: there is no acknowledgment and no retry.
package notify

import (
	"context"
	"log/slog"
)

// Notifier is the sink for user-facing failure messages.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// LogNotifier reports notifications through the structured log. It is the
// fallback sink when no message broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Error(ctx context.Context, message string) {
	n.logger.ErrorContext(ctx, "Cart notification", "message", message)
}
