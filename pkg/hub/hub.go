package hub

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/soundprediction/semagraph/pkg/types"
)

// DefaultQueueSize is the per-subscriber event buffer used when no size is
// configured.
const DefaultQueueSize = 64

// Subscription is one subscriber's handle on the hub. Events arrive on the
// channel returned by Events in publish order. Close unregisters the
// subscription and is idempotent.
type Subscription struct {
	id  string
	ch  chan types.Event
	hub *Hub

	closeOnce sync.Once
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string { return s.id }

// Events returns the subscriber's event channel. The channel is closed when
// the subscription is closed.
func (s *Subscription) Events() <-chan types.Event { return s.ch }

// Close unregisters the subscription and closes its channel. Safe to call
// concurrently with an in-flight Publish, and a no-op the second time.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.remove(s.id)
		close(s.ch)
	})
}

// Hub fans out events to every registered subscriber.
type Hub struct {
	logger    *slog.Logger
	queueSize int

	mu          sync.RWMutex
	subscribers map[string]*Subscription
}

// New creates a Hub with the given per-subscriber queue size. A size of
// zero or less falls back to DefaultQueueSize.
func New(logger *slog.Logger, queueSize int) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		logger:      logger.With("component", "hub"),
		queueSize:   queueSize,
		subscribers: make(map[string]*Subscription),
	}
}

// Subscribe registers a new subscriber and returns its handle. The
// subscriber only sees events published after this call returns.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		id:  uuid.New().String(),
		ch:  make(chan types.Event, h.queueSize),
		hub: h,
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()

	h.logger.Debug("subscriber joined", "subscriber_id", sub.id)
	return sub
}

// Publish delivers the event to every currently registered subscriber.
// Subscribers whose queue is full have the event dropped rather than
// blocking delivery to the rest.
func (h *Hub) Publish(event types.Event) {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		h.deliver(sub, event)
	}
}

// SubscriberCount returns the number of currently registered subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// deliver sends the event to one subscriber without blocking. A send on a
// channel closed by a concurrent Close is treated as an implicit
// unsubscribe, never a publisher crash.
func (h *Hub) deliver(sub *Subscription, event types.Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Debug("dropped event for closed subscriber", "subscriber_id", sub.id)
			h.remove(sub.id)
		}
	}()

	select {
	case sub.ch <- event:
	default:
		h.logger.Warn("subscriber queue full, dropping event",
			"subscriber_id", sub.id, "event_type", event.Type)
	}
}

// remove unregisters a subscriber id; missing ids are ignored.
func (h *Hub) remove(id string) {
	h.mu.Lock()
	_, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("subscriber left", "subscriber_id", id)
	}
}
