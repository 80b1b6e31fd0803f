package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shoply/cartd/pkg/messaging"
	"github.com/shoply/cartd/pkg/messaging/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher captures published events and optionally fails.
type fakePublisher struct {
	published []messaging.Event
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event messaging.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_NatsNotifier_Error(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := NewNatsNotifier(publisher, discardLogger())

	notifier.Error(context.Background(), "requested quantity exceeds stock")

	require.Len(t, publisher.published, 1)
	event, ok := publisher.published[0].(events.CartAlertEvent)
	require.True(t, ok)
	assert.Equal(t, "requested quantity exceeds stock", event.Message)
	assert.NotZero(t, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
	assert.Equal(t, messaging.CartAlertsSubject, event.Subject())

	payload, err := event.Payload()
	require.NoError(t, err)
	var decoded events.CartAlertEvent
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, event.Message, decoded.Message)
}

// A failing broker must never surface to the caller: the sink is
// fire-and-forget.
func Test_NatsNotifier_PublishFailureIsSwallowed(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	notifier := NewNatsNotifier(publisher, discardLogger())

	assert.NotPanics(t, func() {
		notifier.Error(context.Background(), "failed to add product")
	})
	assert.Empty(t, publisher.published)
}

func Test_LogNotifier_Error(t *testing.T) {
	notifier := NewLogNotifier(discardLogger())

	assert.NotPanics(t, func() {
		notifier.Error(context.Background(), "failed to remove product")
	})
}
