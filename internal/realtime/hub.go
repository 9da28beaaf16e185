package realtime

import (
	"context"
	"sync"

	"vintage-vault/utils"
)

// Hub fans published change events out to in-process subscribers. A
// subscriber whose buffer is full misses the event; every event only
// triggers an authoritative refetch, so a queued event already covers it.
type Hub struct {
	mu     sync.Mutex
	subs   map[*hubSubscription]struct{}
	buffer int
	closed bool
}

// NewHub creates a hub whose subscriptions buffer up to buffer events
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[*hubSubscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a subscription for itemID, or for every item when
// itemID is AllItems. The subscription closes itself when ctx ends.
func (h *Hub) Subscribe(ctx context.Context, itemID string) (Subscription, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}
	s := &hubSubscription{
		hub:    h,
		itemID: itemID,
		ch:     make(chan ChangeEvent, h.buffer),
		done:   make(chan struct{}),
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Close()
			case <-s.done:
			}
		}()
	}
	return s, nil
}

// Publish delivers ev to every matching subscriber and reports how many received it
func (h *Hub) Publish(ev ChangeEvent) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for s := range h.subs {
		if s.itemID != AllItems && s.itemID != ev.ItemID {
			continue
		}
		select {
		case s.ch <- ev:
			delivered++
		default:
			utils.Warn("realtime: subscriber buffer full, event coalesced", map[string]any{
				"item_id": ev.ItemID,
				"kind":    string(ev.Kind),
			})
		}
	}
	return delivered
}

// Subscribers returns the number of open subscriptions
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close closes every subscription and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*hubSubscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.closed = true
	h.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
}

type hubSubscription struct {
	hub    *Hub
	itemID string
	ch     chan ChangeEvent
	done   chan struct{}
	once   sync.Once
}

func (s *hubSubscription) Events() <-chan ChangeEvent {
	return s.ch
}

func (s *hubSubscription) Close() error {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.ch)
		s.hub.mu.Unlock()
		close(s.done)
	})
	return nil
}
