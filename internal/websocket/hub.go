package websocket

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const subscriptionBuffer = 16

// Subscription is one live delivery path for a single household's events.
type Subscription struct {
	ID          string
	HouseholdID int64

	hub    *Hub
	events chan Event
	once   sync.Once
}

// Events returns the receive side of the subscription. The channel is
// closed when the subscription is dropped, either by Close or by the hub
// pruning a subscriber that stopped draining.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unsubscribes and closes the event channel. Safe to call more than
// once and safe to race with a hub-side prune.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

func (s *Subscription) closeEvents() {
	s.once.Do(func() { close(s.events) })
}

// Hub is the per-household event broadcaster. The registry maps household
// id to its set of live subscriptions; fan-out for one household holds only
// that household's lock, so a busy household never stalls another one.
type Hub struct {
	mu         sync.RWMutex
	households map[int64]*group
	closed     bool
	logger     *slog.Logger
}

type group struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		households: make(map[int64]*group),
		logger:     logger,
	}
}

// Subscribe registers a new live connection for the household. Events
// published before this call are never delivered; callers must fetch a
// fresh snapshot before relying on the stream.
func (h *Hub) Subscribe(householdID int64) *Subscription {
	sub := &Subscription{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		hub:         h,
		events:      make(chan Event, subscriptionBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.closeEvents()
		return sub
	}
	g, ok := h.households[householdID]
	if !ok {
		g = &group{subs: make(map[*Subscription]struct{})}
		h.households[householdID] = g
	}
	g.mu.Lock()
	g.subs[sub] = struct{}{}
	g.mu.Unlock()
	h.mu.Unlock()

	h.logger.Debug("subscribed", "subscription_id", sub.ID, "household_id", householdID)
	return sub
}

// Publish fans an event out to the household's current subscribers, in the
// order publishes happen for that household. A subscriber whose buffer is
// full is dropped on the spot rather than blocking the publisher; the
// client is expected to reconnect and re-fetch.
func (h *Hub) Publish(householdID int64, ev Event) {
	h.mu.RLock()
	g := h.households[householdID]
	h.mu.RUnlock()
	if g == nil {
		return
	}

	// The group lock serializes publishes for this household, which is
	// what gives each subscriber in-order delivery.
	g.mu.Lock()
	var dropped []*Subscription
	for sub := range g.subs {
		select {
		case sub.events <- ev:
		default:
			dropped = append(dropped, sub)
		}
	}
	for _, sub := range dropped {
		delete(g.subs, sub)
	}
	g.mu.Unlock()

	for _, sub := range dropped {
		sub.closeEvents()
		h.logger.Warn("dropped slow subscriber", "subscription_id", sub.ID, "household_id", householdID)
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	g := h.households[sub.HouseholdID]
	if g != nil {
		g.mu.Lock()
		delete(g.subs, sub)
		if len(g.subs) == 0 {
			delete(h.households, sub.HouseholdID)
		}
		g.mu.Unlock()
	}
	h.mu.Unlock()

	sub.closeEvents()
}

// SubscriberCount returns the number of live subscriptions for a household.
func (h *Hub) SubscriberCount(householdID int64) int {
	h.mu.RLock()
	g := h.households[householdID]
	h.mu.RUnlock()
	if g == nil {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// Shutdown closes every subscription and rejects new ones.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	groups := h.households
	h.households = make(map[int64]*group)
	h.mu.Unlock()

	for _, g := range groups {
		g.mu.Lock()
		for sub := range g.subs {
			sub.closeEvents()
		}
		g.subs = make(map[*Subscription]struct{})
		g.mu.Unlock()
	}
}
