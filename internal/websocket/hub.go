package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis channel carrying notifications between instances.
const clusterChannel = "civic_ws_events"

type Hub struct {
	// UserID -> open connections (a user can have several devices).
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional Redis connection for cross-instance fan-out.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			// Sole closer of client.Send. Fan-out paths only hand stalled
			// clients over here, so a client arriving twice is harmless.
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(notification entity.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

// deliverAll queues data to every local client without blocking. Stalled
// clients are handed to Run for unregistering after the lock is released;
// their Send channel is never closed here.
func (h *Hub) deliverAll(data []byte) {
	var stalled []*Client

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mu.RUnlock()

	h.dropStalled(stalled)
}

// deliverTo queues data to one user's local connections without blocking.
// Sends happen under the read lock so they cannot race the close in Run,
// which holds the write lock.
func (h *Hub) deliverTo(userID uuid.UUID, data []byte) {
	var stalled []*Client

	h.mu.RLock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	h.dropStalled(stalled)
}

func (h *Hub) dropStalled(stalled []*Client) {
	for _, client := range stalled {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		h.unregister <- client
	}
}

// Broadcast pushes a notification to every connected client, local and
// (via Redis) on other instances.
func (h *Hub) Broadcast(notification entity.Notification) {
	data := envelope(notification)
	h.deliverAll(data)

	if h.rdb != nil {
		h.publishToCluster("*", data)
	}
}

// Send delivers a notification to one user's connections. It always
// publishes to Redis as well so the user's sessions on other instances
// receive it too.
func (h *Hub) Send(userID uuid.UUID, notification entity.Notification) {
	data := envelope(notification)
	h.deliverTo(userID, data)

	if h.rdb != nil {
		h.publishToCluster(userID.String(), data)
	}
}

func (h *Hub) publishToCluster(targetUserID string, data []byte) {
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": targetUserID,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

// subscribeToRedis listens on the cluster channel and forwards messages to
// locally connected clients. target_user_id "*" means broadcast.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.deliverAll(payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverTo(uid, payload.Message)
	}
}
