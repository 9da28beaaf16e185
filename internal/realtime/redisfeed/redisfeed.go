// Package redisfeed carries change events over Redis pub/sub so that every
// service instance sees bids accepted by any of them.
package redisfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"vintage-vault/internal/realtime"
	"vintage-vault/utils"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "vintage-vault:item:"

const defaultBuffer = 64

// Channel returns the pub/sub channel of itemID
func Channel(itemID string) string {
	return channelPrefix + itemID
}

// Feed publishes and subscribes to change events on a Redis server
type Feed struct {
	client *redis.Client
	buffer int
}

var _ realtime.Subscriber = (*Feed)(nil)

// New creates a Feed on client
func New(client *redis.Client) *Feed {
	return &Feed{client: client, buffer: defaultBuffer}
}

// Publish sends ev to the subscribers of its item
func (f *Feed) Publish(ctx context.Context, ev realtime.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("redisfeed: encode %s event: %w", ev.Kind, err)
	}
	if err := f.client.Publish(ctx, Channel(ev.ItemID), payload).Err(); err != nil {
		return fmt.Errorf("redisfeed: publish %s event of item %s: %w", ev.Kind, ev.ItemID, err)
	}
	return nil
}

// Subscribe opens a feed for itemID, or for every item when itemID is
// realtime.AllItems. It returns once Redis confirmed the subscription.
func (f *Feed) Subscribe(ctx context.Context, itemID string) (realtime.Subscription, error) {
	var ps *redis.PubSub
	if itemID == realtime.AllItems {
		ps = f.client.PSubscribe(ctx, channelPrefix+"*")
	} else {
		ps = f.client.Subscribe(ctx, Channel(itemID))
	}
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redisfeed: subscribe to item %q: %w", itemID, err)
	}

	sub := newSubscription(ps.Close, f.buffer)
	go sub.pump(ctx, ps.Channel())
	return sub, nil
}

type subscription struct {
	ch       chan realtime.ChangeEvent
	done     chan struct{}
	once     sync.Once
	closeSrc func() error
}

func newSubscription(closeSrc func() error, buffer int) *subscription {
	return &subscription{
		ch:       make(chan realtime.ChangeEvent, buffer),
		done:     make(chan struct{}),
		closeSrc: closeSrc,
	}
}

func (s *subscription) Events() <-chan realtime.ChangeEvent {
	return s.ch
}

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.closeSrc()
	})
	return err
}

// pump decodes messages into s.ch until ctx ends, s closes or msgs closes
func (s *subscription) pump(ctx context.Context, msgs <-chan *redis.Message) {
	defer close(s.ch)
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case m, ok := <-msgs:
			if !ok {
				return
			}
			ev, err := decode(m)
			if err != nil {
				utils.Warn("redisfeed: dropping undecodable message", map[string]any{
					"channel": m.Channel,
					"error":   err.Error(),
				})
				continue
			}
			select {
			case s.ch <- ev:
			default:
				utils.Warn("redisfeed: subscriber buffer full, event coalesced", map[string]any{
					"item_id": ev.ItemID,
					"kind":    string(ev.Kind),
				})
			}
		}
	}
}

func decode(m *redis.Message) (realtime.ChangeEvent, error) {
	var ev realtime.ChangeEvent
	if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
		return realtime.ChangeEvent{}, err
	}
	if ev.ItemID == "" {
		ev.ItemID = strings.TrimPrefix(m.Channel, channelPrefix)
	}
	return ev, nil
}

// Relay republishes every event of source on feed until ctx ends
func Relay(ctx context.Context, source realtime.Subscriber, feed *Feed) error {
	for ev, err := range realtime.Stream(ctx, source, realtime.AllItems) {
		if err != nil {
			return err
		}
		if err := feed.Publish(ctx, ev); err != nil {
			utils.Error("redisfeed: relay failed", map[string]any{
				"item_id": ev.ItemID,
				"error":   err.Error(),
			})
		}
	}
	return ctx.Err()
}
