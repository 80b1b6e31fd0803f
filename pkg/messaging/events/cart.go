package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shoply/cartd/pkg/messaging"
)

// CartAlertEvent is a one-way, user-facing failure notification emitted by
// the cart service. There is no acknowledgment or retry.
type CartAlertEvent struct {
	ID         uuid.UUID `json:"id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e CartAlertEvent) Subject() string {
	return messaging.CartAlertsSubject
}

func (e CartAlertEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
