package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var got []EventType
	d.Subscribe(EventViewChanged, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	d.Subscribe(EventLoggedOut, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventViewChanged}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLoginFailed}))

	assert.Equal(t, []EventType{EventViewChanged}, got)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	calls := 0
	d.Subscribe(EventAccessDenied, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventAccessDenied, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAccessDenied})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
