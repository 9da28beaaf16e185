// Package realtime carries row-change notifications from the backend
// platform to the live screens that watch a given item.
package realtime

import (
	"context"
	"errors"
	"iter"

	"vintage-vault/internal/models"
)

// ChangeKind names the row change a notification reports
type ChangeKind string

const (
	BidInserted ChangeKind = "bid_inserted"
	ItemUpdated ChangeKind = "item_updated"
)

// AllItems subscribes to changes of every item
const AllItems = ""

var ErrClosed = errors.New("realtime: feed closed")

// ChangeEvent is a single push notification. Delivery is at-least-once
// and unordered relative to direct mutation responses; payloads are hints
// and never the authoritative state.
type ChangeEvent struct {
	Kind   ChangeKind   `json:"kind"`
	ItemID string       `json:"item_id"`
	Bid    *models.Bid  `json:"bid,omitempty"`
	Item   *models.Item `json:"item,omitempty"`
}

// Subscription is an open channel of change events for one resource key
type Subscription interface {
	Events() <-chan ChangeEvent
	Close() error
}

// Subscriber opens per-item subscriptions
type Subscriber interface {
	Subscribe(ctx context.Context, itemID string) (Subscription, error)
}

// Stream returns a lazy sequence of change events for itemID. The
// subscription is opened on the first pull and closed when the consumer
// stops ranging or ctx ends; ranging again opens a fresh subscription.
func Stream(ctx context.Context, sub Subscriber, itemID string) iter.Seq2[ChangeEvent, error] {
	return func(yield func(ChangeEvent, error) bool) {
		s, err := sub.Subscribe(ctx, itemID)
		if err != nil {
			yield(ChangeEvent{}, err)
			return
		}
		defer s.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-s.Events():
				if !ok {
					return
				}
				if !yield(ev, nil) {
					return
				}
			}
		}
	}
}
