package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"marknote-be/internal/pkg/logger"
	"marknote-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "resource_events"

// clusterMessage is what instances exchange over Redis. Origin lets an
// instance skip the copies it published itself.
type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// Hub fans resource events out to the websocket clients of the owning user.
type Hub struct {
	// UserID -> connections (multi-device)
	clients map[uuid.UUID][]*Client
	mu      sync.RWMutex

	// Redis connection for cross-instance delivery, may be nil
	rdb      *redis.Client
	instance string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:  make(map[uuid.UUID][]*Client),
		rdb:      rdb,
		instance: uuid.NewString(),
		logger:   log,
	}
}

// Run relays events published by other instances until ctx is done. Without
// Redis it returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleCluster([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleCluster(raw []byte) {
	var payload clusterMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("HUB", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.instance {
		return
	}
	userID, err := uuid.Parse(payload.TargetUserID)
	if err != nil {
		return
	}
	h.deliver(userID, payload.Message)
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.UserID] = append(h.clients[client.UserID], client)
	h.mu.Unlock()
	h.logger.Info("HUB", "Client registered", map[string]interface{}{"user_id": client.UserID})
}

// Unregister closes the client's send channel. Calling it twice is a no-op.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
	}
}

// Connected reports how many live connections userID has on this instance.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends event to the owner's connections here and, with Redis, on
// every other instance. Events without an owner are ignored.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	owner, _ := event.Payload()["user_id"].(string)
	userID, err := uuid.Parse(owner)
	if err != nil {
		return nil
	}

	data, err := events.Encode(event)
	if err != nil {
		return err
	}
	h.deliver(userID, data)

	if h.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(clusterMessage{
		Origin:       h.instance,
		TargetUserID: userID.String(),
		Message:      data,
	})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, clusterChannel, payload).Err()
}

func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("HUB", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
		h.Unregister(client)
	}
}
