package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shoply/cartd/pkg/messaging"
	"github.com/shoply/cartd/pkg/messaging/events"
)

// NatsNotifier publishes notifications as CartAlertEvents. Publish failures
// are logged and swallowed: the sink is fire-and-forget by contract.
type NatsNotifier struct {
	publisher messaging.Publisher
	logger    *slog.Logger
}

func NewNatsNotifier(publisher messaging.Publisher, logger *slog.Logger) *NatsNotifier {
	return &NatsNotifier{
		publisher: publisher,
		logger:    logger.With("component", "notifier"),
	}
}

func (n *NatsNotifier) Error(ctx context.Context, message string) {
	event := events.CartAlertEvent{
		ID:         uuid.New(),
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish CartAlertEvent", "error", err)
	}
}
