package perftests

import (
	"fmt"
	"time"

	"vintage-vault/internal/backend/memory"
	"vintage-vault/internal/bidding"
	"vintage-vault/internal/models"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/session"
)

// liveItem is an auction that stays live for the whole benchmark
func liveItem(id string, price float64) models.Item {
	now := time.Now()
	start, end := now.Add(-time.Hour), now.Add(24*time.Hour)
	return models.Item{
		ItemID:          id,
		Name:            "Benchmark item " + id,
		Description:     "Load test item",
		Category:        models.CategoryAntiques,
		Price:           price,
		MinBidIncrement: 1,
		StartTime:       &start,
		EndTime:         &end,
		IsAuction:       true,
		Verified:        true,
		CreatedAt:       start,
	}
}

// setupCoordinator creates a store with numItems live items named item_<i>
// and a cached coordinator over it
func setupCoordinator(numItems int, price float64) (*memory.Store, *bidding.Coordinator) {
	store := memory.NewStore(nil)
	for i := 0; i < numItems; i++ {
		store.AddItem(liveItem(fmt.Sprintf("item_%d", i), price))
	}
	return store, bidding.NewCoordinator(store, querycache.New(nil), 10)
}

func bidder(userID string) *session.Session {
	return &session.Session{UserID: userID, Role: models.RoleUser}
}
