package session

import (
	"context"
	"sync"
)

// Change describes a sign-in state transition of a user
type Change struct {
	UserID    string
	SignedOut bool
}

// Broker fans session changes out to subscribers. Slow subscribers miss
// changes rather than block publishers.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Change
}

// NewBroker creates a Broker with no subscribers
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Change)}
}

// Subscribe registers for changes until ctx ends or cancel is called
func (b *Broker) Subscribe(ctx context.Context) (<-chan Change, func()) {
	ch := make(chan Change, 8)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel
}

// Publish delivers c to every subscriber
func (b *Broker) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Len returns the number of subscribers
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
