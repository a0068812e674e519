package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ContinuousListener bridges one broker subscription into the Bubble Tea
// loop. Each Listen command yields a single Event[T]; handle it in Update and
// return Listen again to get the next one. The command yields nil once ctx
// is cancelled or the broker is closed, which ends the chain.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker for the lifetime of ctx.
// Events published after this call are buffered until Listen picks them up.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Listen returns a command that yields the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return l.next
}

func (l *ContinuousListener[T]) next() tea.Msg {
	select {
	case <-l.ctx.Done():
		return nil
	case event, ok := <-l.ch:
		if !ok {
			return nil
		}
		return event
	}
}
