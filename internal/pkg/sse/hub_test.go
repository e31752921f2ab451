package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToSubscribedTopics(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe([]string{"attendance"})
	defer cleanup()

	hub.Publish(Event{Topic: "attendance", Data: "d1"})
	hub.Publish(Event{Topic: "payroll", Data: "d2"})

	select {
	case evt := <-ch:
		assert.Equal(t, "attendance", evt.Topic)
	case <-time.After(time.Second):
		t.Fatal("expected an attendance event")
	}

	select {
	case evt := <-ch:
		t.Fatalf("unexpected event on topic %s", evt.Topic)
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe([]string{"attendance", "payroll"})
	require.Equal(t, 1, hub.SubscriberCount("attendance"))
	require.Equal(t, 1, hub.SubscriberCount("payroll"))

	cleanup()
	assert.Zero(t, hub.SubscriberCount("attendance"))
	assert.Zero(t, hub.SubscriberCount("payroll"))

	// Publishing after cleanup must not panic or block.
	hub.Publish(Event{Topic: "attendance"})
}

func TestHubFullSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe([]string{"attendance"})
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Topic: "attendance", Data: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber channel")
	}
}
