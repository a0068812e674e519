package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContinuousListener_ReturnsEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(UpdatedEvent, "success")

	msg := listener.Listen()()
	event, ok := msg.(Event[string])
	require.True(t, ok, "expected Event[string], got %T", msg)
	require.Equal(t, UpdatedEvent, event.Type)
	require.Equal(t, "success", event.Payload)
}

func TestContinuousListener_NilAfterCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	listener := NewContinuousListener(ctx, broker)
	cancel()

	require.Nil(t, listener.Listen()())
}

func TestContinuousListener_NilAfterBrokerClose(t *testing.T) {
	broker := NewBroker[string]()
	listener := NewContinuousListener(context.Background(), broker)
	broker.Close()

	require.Nil(t, listener.Listen()())
}

func TestContinuousListener_ListenRepeatedly(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(CreatedEvent, 1)
	broker.Publish(CreatedEvent, 2)

	first, ok := listener.Listen()().(Event[int])
	require.True(t, ok)
	second, ok := listener.Listen()().(Event[int])
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, []int{first.Payload, second.Payload})
}
