package redisfeed

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"vintage-vault/internal/models"
	"vintage-vault/internal/realtime"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func message(t *testing.T, ev realtime.ChangeEvent) *redis.Message {
	t.Helper()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)
	return &redis.Message{Channel: Channel(ev.ItemID), Payload: string(payload)}
}

// unreachable returns a client pointed at a closed port that fails fast
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestChannel(t *testing.T) {
	t.Parallel()
	require.Equal(t, "vintage-vault:item:item1", Channel("item1"))
}

func TestSubscription_PumpDecodes(t *testing.T) {
	t.Parallel()

	var closed atomic.Int32
	sub := newSubscription(func() error { closed.Add(1); return nil }, 4)
	msgs := make(chan *redis.Message, 4)
	go sub.pump(context.Background(), msgs)

	bid := &models.Bid{BidID: "b1", ItemID: "item1", UserID: "user2", Amount: 1100}
	msgs <- message(t, realtime.ChangeEvent{Kind: realtime.BidInserted, ItemID: "item1", Bid: bid})
	msgs <- &redis.Message{Channel: Channel("item1"), Payload: "{broken"}
	msgs <- &redis.Message{Channel: Channel("item9"), Payload: `{"kind":"item_updated"}`}

	ev := <-sub.Events()
	require.Equal(t, realtime.BidInserted, ev.Kind)
	require.Equal(t, "user2", ev.Bid.UserID)

	ev = <-sub.Events()
	require.Equal(t, realtime.ItemUpdated, ev.Kind)
	require.Equal(t, "item9", ev.ItemID, "item taken from the channel name")

	close(msgs)
	_, ok := <-sub.Events()
	require.False(t, ok)
	require.Equal(t, int32(1), closed.Load())

	require.NoError(t, sub.Close())
	require.Equal(t, int32(1), closed.Load(), "source closed once")
}

func TestSubscription_CloseStopsPump(t *testing.T) {
	t.Parallel()

	sub := newSubscription(func() error { return nil }, 1)
	msgs := make(chan *redis.Message)
	go sub.pump(context.Background(), msgs)

	require.NoError(t, sub.Close())
	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestSubscription_ContextEndsPump(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	sub := newSubscription(func() error { return nil }, 1)
	go sub.pump(ctx, make(chan *redis.Message))

	cancel()
	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestFeed_UnreachableServer(t *testing.T) {
	t.Parallel()

	client := unreachable()
	defer client.Close()
	feed := New(client)
	ctx := context.Background()

	_, err := feed.Subscribe(ctx, "item1")
	require.Error(t, err)

	err = feed.Publish(ctx, realtime.ChangeEvent{Kind: realtime.ItemUpdated, ItemID: "item1"})
	require.ErrorContains(t, err, "publish item_updated event of item item1")
}

func TestRelay_StopsWithContext(t *testing.T) {
	t.Parallel()

	client := unreachable()
	defer client.Close()
	hub := realtime.NewHub(4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Relay(ctx, hub, New(client)) }()
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	// publish failures are logged, the relay keeps going
	hub.Publish(realtime.ChangeEvent{Kind: realtime.ItemUpdated, ItemID: "item1"})
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
