package websocket

import (
	"testing"
	"time"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, logger.NewIsolatedLogger(t.TempDir()+"/hub-test.log"))
	go h.Run()
	return h
}

func registerClient(t *testing.T, h *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	client := &Client{
		Hub:    h,
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
	h.register <- client

	assert.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, c := range h.clients[userID] {
			if c == client {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	return client
}

func clientCount(h *Hub, userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func sampleNotification(userID uuid.UUID) entity.Notification {
	return entity.Notification{
		Id:     uuid.New(),
		UserId: userID,
		Title:  "Status updated",
		Body:   "Your feedback moved to IN PROGRESS",
	}
}

func TestSendDropsStalledClientWithoutPanic(t *testing.T) {
	h := newTestHub(t)
	userID := uuid.New()

	// No buffer and no reader, so the first delivery already stalls.
	client := registerClient(t, h, userID, 0)

	h.Send(userID, sampleNotification(userID))

	assert.Eventually(t, func() bool {
		return clientCount(h, userID) == 0
	}, time.Second, 5*time.Millisecond, "stalled client must be unregistered")

	// The channel is closed exactly once, by the hub loop.
	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("Send channel was never closed")
	}

	// Further deliveries to the departed user are no-ops.
	h.Send(userID, sampleNotification(userID))
	h.Broadcast(sampleNotification(userID))
}

func TestBroadcastKeepsHealthySiblingWhenOneStalls(t *testing.T) {
	h := newTestHub(t)
	userID := uuid.New()

	stalled := registerClient(t, h, userID, 0)
	healthy := registerClient(t, h, userID, 4)

	h.Broadcast(sampleNotification(userID))

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "notification")
	case <-time.After(time.Second):
		t.Fatal("healthy client never received the broadcast")
	}

	assert.Eventually(t, func() bool {
		return clientCount(h, userID) == 1
	}, time.Second, 5*time.Millisecond, "only the stalled connection is dropped")

	select {
	case _, open := <-stalled.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stalled client's channel was never closed")
	}
}

func TestRepeatedStallsAcrossFanOutsAreHarmless(t *testing.T) {
	h := newTestHub(t)
	userID := uuid.New()

	registerClient(t, h, userID, 0)

	// A client can stall in several fan-out passes before Run processes the
	// first unregister; every pass after the first must be a no-op.
	for i := 0; i < 5; i++ {
		h.Send(userID, sampleNotification(userID))
	}

	assert.Eventually(t, func() bool {
		return clientCount(h, userID) == 0
	}, time.Second, 5*time.Millisecond)
}
