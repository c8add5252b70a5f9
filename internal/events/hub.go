// Package events delivers change notifications to the views sharing a store.
// Services publish after each successful mutation and the polling job
// publishes when a reload observes someone else's write.
package events

import (
	"sync"
	"time"

	"carrental-portal/internal/logger"
)

type Kind string

const (
	VehicleAdded        Kind = "vehicle.added"
	VehicleUpdated      Kind = "vehicle.updated"
	VehicleDeleted      Kind = "vehicle.deleted"
	RentalSubmitted     Kind = "rental.submitted"
	RentalDecided       Kind = "rental.decided"
	RentalCancelled     Kind = "rental.cancelled"
	RentalMessage       Kind = "rental.message"
	ListingSubmitted    Kind = "listing.submitted"
	ListingDecided      Kind = "listing.decided"
	ListingMessage      Kind = "listing.message"
	VehicleMaterialized Kind = "listing.materialized"
	StoreRefreshed      Kind = "store.refreshed"
)

// Event describes one change. Payload carries a copy of the affected record
// when one exists.
type Event struct {
	Kind       Kind      `json:"kind"`
	Collection string    `json:"collection"`
	ID         string    `json:"id,omitempty"`
	View       string    `json:"view,omitempty"`
	Payload    any       `json:"payload,omitempty"`
	At         time.Time `json:"at"`
}

type Handler func(Event)

// Hub fans events out to subscribers synchronously, in subscription order.
// A nil *Hub accepts publishes and drops them.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
	order  []int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]Handler)}
}

// Subscribe registers h and returns a function that removes it
func (h *Hub) Subscribe(fn Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.order = append(h.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			for i, v := range h.order {
				if v == id {
					h.order = append(h.order[:i], h.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e to every current subscriber. Handlers run outside the
// lock so they may publish or unsubscribe themselves.
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.order))
	for _, id := range h.order {
		handlers = append(handlers, h.subs[id])
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		deliver(fn, e)
	}
}

func deliver(fn Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event handler panicked", "kind", e.Kind, "id", e.ID, "panic", r)
		}
	}()
	fn(e)
}
