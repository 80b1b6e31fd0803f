package messaging

import (
	"context"
)

// CartAlertsSubject carries user-facing cart failure notifications.
const CartAlertsSubject = "cart.alerts"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
