package memory

import (
	"context"
	"fmt"
	"math"
	"sort"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/realtime"
	"vintage-vault/utils"
)

// Messages returned by place_bid inside a structured failure
const (
	msgItemNotFound = "Item not found"
	msgNotAuction   = "Item is not up for auction"
	msgNotLive      = "Auction is not live"
	msgBidTooLow    = "Bid too low"
	msgInvalidBid   = "Invalid bid amount"
)

const anonymousBidder = "Anonymous"

// PlaceBid is the atomic bid acceptance procedure. The floor check, the
// bid insert and the current_bid update happen under one lock, so
// concurrent bidders are serialised and the loser gets a structured failure.
func (s *Store) PlaceBid(ctx context.Context, itemID, bidderID string, amount float64) (models.PlaceBidResult, error) {
	if err := ctx.Err(); err != nil {
		return models.PlaceBidResult{}, err
	}

	s.mu.Lock()
	item, ok := s.items[itemID]
	if !ok {
		s.mu.Unlock()
		return models.PlaceBidResult{Error: msgItemNotFound}, nil
	}
	if !item.IsAuction {
		s.mu.Unlock()
		return models.PlaceBidResult{Error: msgNotAuction}, nil
	}
	now := s.clock.Now().UTC()
	if item.StatusAt(now) != models.AuctionLive {
		s.mu.Unlock()
		return models.PlaceBidResult{Error: msgNotLive}, nil
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		s.mu.Unlock()
		return models.PlaceBidResult{Error: msgInvalidBid}, nil
	}
	if amount < item.BidBase()+item.MinBidIncrement {
		s.mu.Unlock()
		return models.PlaceBidResult{Error: msgBidTooLow}, nil
	}

	name := anonymousBidder
	if p, ok := s.profiles[bidderID]; ok && p.FullName != "" {
		name = p.FullName
	}
	bid := models.Bid{
		BidID:      utils.GenerateID(),
		ItemID:     itemID,
		UserID:     bidderID,
		BidderName: name,
		Amount:     amount,
		CreatedAt:  now,
	}
	s.bids[itemID] = append(s.bids[itemID], bid)

	high := amount
	item.CurrentBid = &high
	item.UpdatedAt = now
	s.items[itemID] = item
	updated := s.viewLocked(item)
	s.mu.Unlock()

	s.hub.Publish(realtime.ChangeEvent{Kind: realtime.BidInserted, ItemID: itemID, Bid: &bid})
	s.hub.Publish(realtime.ChangeEvent{Kind: realtime.ItemUpdated, ItemID: itemID, Item: &updated})

	return models.PlaceBidResult{OK: true, NewHigh: &high}, nil
}

// ListItemBids returns the leaderboard of an item: bids by amount
// descending, ties broken by the earlier bid, at most limit entries
func (s *Store) ListItemBids(ctx context.Context, itemID string, limit int) ([]models.Bid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.items[itemID]; !ok {
		return nil, fmt.Errorf("list bids for item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}

	bids := append([]models.Bid(nil), s.bids[itemID]...)
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Amount != bids[j].Amount {
			return bids[i].Amount > bids[j].Amount
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
	if limit > 0 && len(bids) > limit {
		bids = bids[:limit]
	}
	return bids, nil
}

// ListUserBids returns a user's bid history, newest first
func (s *Store) ListUserBids(ctx context.Context, userID string) ([]models.UserBid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.UserBid
	for itemID, bids := range s.bids {
		item := s.viewLocked(s.items[itemID])
		summary := models.ItemSummary{
			ItemID:        item.ItemID,
			Name:          item.Name,
			ImageURL:      item.ImageURL,
			AuctionStatus: item.AuctionStatus,
			EndTime:       item.EndTime,
			CurrentBid:    item.CurrentBid,
		}
		for _, b := range bids {
			if b.UserID == userID {
				out = append(out, models.UserBid{Bid: b, Item: summary})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
