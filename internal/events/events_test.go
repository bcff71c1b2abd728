package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		received = e
		return nil
	})

	payload := BookingEventPayload{BookingID: 7, ItemID: 2, Status: "WAITING"}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.NotNil(t, received)
	assert.Equal(t, EventBookingCreated, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var got BookingEventPayload
	require.NoError(t, json.Unmarshal(received.Payload, &got))
	assert.Equal(t, payload, got)
}

func TestEventBus_TypeIsolation(t *testing.T) {
	bus := NewEventBus()

	var approvals, rejections int
	bus.Subscribe(EventBookingApproved, func(*Event) error { approvals++; return nil })
	bus.Subscribe(EventBookingRejected, func(*Event) error { rejections++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingApproved, BookingEventPayload{BookingID: 1}))

	assert.Equal(t, 1, approvals)
	assert.Zero(t, rejections)
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	var calls int
	handler := func(*Event) error { calls++; return nil }
	bus.Subscribe(EventCommentAdded, handler)
	bus.Subscribe(EventCommentAdded, handler)

	require.NoError(t, bus.PublishJSON(EventCommentAdded, CommentEventPayload{CommentID: 1}))
	assert.Equal(t, 2, calls)
}

func TestEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()

	var reached bool
	bus.Subscribe(EventItemCreated, func(*Event) error { return errors.New("boom") })
	bus.Subscribe(EventItemCreated, func(*Event) error { reached = true; return nil })

	require.NoError(t, bus.PublishJSON(EventItemCreated, ItemEventPayload{ItemID: 1}))
	assert.True(t, reached)
}

func TestEventBus_NilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, nil))
}

func TestEventBus_UnmarshalablePayload(t *testing.T) {
	bus := NewEventBus()
	assert.Error(t, bus.PublishJSON(EventBookingCreated, make(chan int)))
}
