package broadcast

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

var ErrSubscriberNotFound = errors.New("subscriber not found")

// Subscriber is one live connection. Deliver must not block; it returns false when the payload was dropped.
type Subscriber interface {
	ID() string
	Deliver(payload []byte) bool
}

// Hub is the set of live connections that receive match events.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]Subscriber
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "broadcast"),
		subscribers: make(map[string]Subscriber),
	}
}

func (that *Hub) Subscribe(sub Subscriber) {
	that.mu.Lock()
	that.subscribers[sub.ID()] = sub
	that.mu.Unlock()

	that.logger.Debug("subscriber added", "id", sub.ID())
}

// Unsubscribe removes a connection. Once it returns, the hub will not call Deliver on it again.
func (that *Hub) Unsubscribe(id string) {
	that.mu.Lock()
	delete(that.subscribers, id)
	that.mu.Unlock()

	that.logger.Debug("subscriber removed", "id", id)
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.subscribers)
}

// Broadcast sends the same serialized event to every subscriber.
func (that *Hub) Broadcast(event entity.Event) error {
	log := that.logger.With("method", "Broadcast", "type", event.Type)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for id, sub := range that.subscribers {
		if !sub.Deliver(payload) {
			log.Warn("subscriber queue full, event dropped", "id", id)
		}
	}

	return nil
}

// Reply sends an event to exactly one subscriber.
func (that *Hub) Reply(id string, event entity.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	sub, ok := that.subscribers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSubscriberNotFound, id)
	}

	if !sub.Deliver(payload) {
		that.logger.Warn("subscriber queue full, reply dropped", "method", "Reply", "id", id, "type", event.Type)
	}

	return nil
}
