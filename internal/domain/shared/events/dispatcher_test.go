package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsub/internal/shared/logger"
)

func TestInMemoryEventDispatcher_DeliversInOrder(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNop())

	var (
		mu  sync.Mutex
		got []string
	)
	require.NoError(t, d.Subscribe("subscription.delivery_marked", NewSimpleEventHandler("subscription.delivery_marked", func(e DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.GetAggregateID())
		return nil
	})))

	require.NoError(t, d.Start())
	require.NoError(t, d.PublishAll([]DomainEvent{
		NewBaseEvent("msub_1", "subscription.delivery_marked"),
		NewBaseEvent("msub_2", "subscription.delivery_marked"),
		NewBaseEvent("msub_3", "subscription.created"),
	}))
	require.NoError(t, d.Stop())

	assert.Equal(t, []string{"msub_1", "msub_2"}, got)
}

func TestInMemoryEventDispatcher_NotRunning(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNop())

	assert.Error(t, d.Publish(NewBaseEvent("msub_1", "subscription.created")))
	assert.Error(t, d.Stop())

	require.NoError(t, d.Start())
	assert.Error(t, d.Start())
	require.NoError(t, d.Stop())
}

func TestInMemoryEventDispatcher_HandlerFailuresAreContained(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNop())

	calls := 0
	require.NoError(t, d.Subscribe("x", NewSimpleEventHandler("x", func(DomainEvent) error { panic("boom") })))
	require.NoError(t, d.Subscribe("x", NewSimpleEventHandler("x", func(DomainEvent) error { return errors.New("failed") })))
	require.NoError(t, d.Subscribe("x", NewSimpleEventHandler("x", func(DomainEvent) error { calls++; return nil })))

	require.NoError(t, d.Start())
	require.NoError(t, d.Publish(NewBaseEvent("msub_1", "x")))
	require.NoError(t, d.Stop())

	assert.Equal(t, 1, calls)
}

func TestSubscribe_Validation(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNop())
	assert.Error(t, d.Subscribe("", NewSimpleEventHandler("", nil)))
	assert.Error(t, d.Subscribe("x", nil))
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent("msub_1", "subscription.created")
	assert.Equal(t, "msub_1", e.GetAggregateID())
	assert.Equal(t, "subscription.created", e.GetEventType())
	assert.Equal(t, 1, e.GetVersion())
	assert.False(t, e.GetOccurredAt().IsZero())
}
