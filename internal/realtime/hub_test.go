package realtime

import (
	"context"
	"testing"
	"time"

	"vintage-vault/internal/models"

	"github.com/stretchr/testify/require"
)

func bidEvent(itemID, userID string, amount float64) ChangeEvent {
	return ChangeEvent{
		Kind:   BidInserted,
		ItemID: itemID,
		Bid:    &models.Bid{BidID: "b-" + userID, ItemID: itemID, UserID: userID, Amount: amount},
	}
}

func TestHub_PublishRoutesByItem(t *testing.T) {
	t.Parallel()

	hub := NewHub(4)
	ctx := context.Background()

	item1, err := hub.Subscribe(ctx, "item1")
	require.NoError(t, err)
	all, err := hub.Subscribe(ctx, AllItems)
	require.NoError(t, err)

	require.Equal(t, 2, hub.Publish(bidEvent("item1", "user1", 100)))
	require.Equal(t, 1, hub.Publish(bidEvent("item2", "user1", 200)))

	ev := <-item1.Events()
	require.Equal(t, "item1", ev.ItemID)
	require.Len(t, item1.Events(), 0)

	require.Equal(t, "item1", (<-all.Events()).ItemID)
	require.Equal(t, "item2", (<-all.Events()).ItemID)
}

func TestHub_FullBufferCoalesces(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	sub, err := hub.Subscribe(context.Background(), "item1")
	require.NoError(t, err)

	require.Equal(t, 1, hub.Publish(bidEvent("item1", "user1", 100)))
	require.Equal(t, 0, hub.Publish(bidEvent("item1", "user2", 110)))
	require.Equal(t, "user1", (<-sub.Events()).Bid.UserID)
}

func TestHub_SubscriptionClosesWithContext(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	ctx, cancel := context.WithCancel(context.Background())
	sub, err := hub.Subscribe(ctx, "item1")
	require.NoError(t, err)
	require.Equal(t, 1, hub.Subscribers())

	cancel()
	require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-sub.Events()
	require.False(t, ok)
	require.NoError(t, sub.Close(), "closing twice must be safe")
}

func TestHub_CloseRejectsNewSubscriptions(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	sub, err := hub.Subscribe(context.Background(), "item1")
	require.NoError(t, err)

	hub.Close()
	_, ok := <-sub.Events()
	require.False(t, ok)

	_, err = hub.Subscribe(context.Background(), "item1")
	require.ErrorIs(t, err, ErrClosed)
	require.Equal(t, 0, hub.Publish(bidEvent("item1", "user1", 100)))
}

func TestStream_LazyAndRestartable(t *testing.T) {
	t.Parallel()

	hub := NewHub(4)
	ctx := context.Background()
	seq := Stream(ctx, hub, "item1")

	require.Equal(t, 0, hub.Subscribers(), "no subscription before the first pull")

	for round := 0; round < 2; round++ {
		done := make(chan ChangeEvent)
		go func() {
			for ev, err := range seq {
				require.NoError(t, err)
				done <- ev
				return
			}
		}()

		require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
		hub.Publish(bidEvent("item1", "user1", float64(100+round)))

		ev := <-done
		require.Equal(t, float64(100+round), ev.Bid.Amount)
		require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	}
}

func TestStream_SubscribeError(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	hub.Close()

	var got error
	for _, err := range Stream(context.Background(), hub, "item1") {
		got = err
	}
	require.ErrorIs(t, got, ErrClosed)
}
