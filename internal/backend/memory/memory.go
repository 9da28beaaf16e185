// Package memory is an in-process stand-in for the backend platform. It
// reproduces the platform contract, including the atomic place_bid
// procedure and per-item change feeds, for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"vintage-vault/internal/backend"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/realtime"
	"vintage-vault/utils"

	"k8s.io/utils/clock"
)

const feedBuffer = 64

var _ backend.Backend = (*Store)(nil)
var _ backend.DefaultSwapper = (*Store)(nil)

// Store is a concurrency-safe in-memory implementation of backend.Backend
type Store struct {
	mu        sync.RWMutex
	clock     clock.PassiveClock
	items     map[string]models.Item        // key: itemID -> value: item
	bids      map[string][]models.Bid       // key: itemID -> value: list of bids
	profiles  map[string]models.Profile     // key: userID -> value: profile
	roles     map[string]models.Role        // key: userID -> value: role
	addresses map[string]models.Address     // key: addressID -> value: address
	orders    map[string][]models.Order     // key: userID -> value: orders
	cart      map[string][]models.CartEntry // key: userID -> value: cart entries
	hub       *realtime.Hub
}

// NewStore creates an empty store reading time from clk
func NewStore(clk clock.PassiveClock) *Store {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Store{
		clock:     clk,
		items:     make(map[string]models.Item),
		bids:      make(map[string][]models.Bid),
		profiles:  make(map[string]models.Profile),
		roles:     make(map[string]models.Role),
		addresses: make(map[string]models.Address),
		orders:    make(map[string][]models.Order),
		cart:      make(map[string][]models.CartEntry),
		hub:       realtime.NewHub(feedBuffer),
	}
}

// AddItem seeds an item as-is, bypassing CreateItem defaults
func (s *Store) AddItem(item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ItemID] = item
}

// AddProfile seeds a user profile
func (s *Store) AddProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

// SetRole assigns a role to a user
func (s *Store) SetRole(userID string, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[userID] = role
}

// Subscribe opens a change feed for itemID
func (s *Store) Subscribe(ctx context.Context, itemID string) (realtime.Subscription, error) {
	return s.hub.Subscribe(ctx, itemID)
}

// Watchers returns the number of open change feed subscriptions
func (s *Store) Watchers() int {
	return s.hub.Subscribers()
}

// Close shuts every open change feed
func (s *Store) Close() error {
	s.hub.Close()
	return nil
}

// GetItem returns an item with its derived auction state
func (s *Store) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	if err := ctx.Err(); err != nil {
		return models.Item{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok {
		return models.Item{}, fmt.Errorf("get item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}
	return s.viewLocked(item), nil
}

// ListItems returns the items matching filter
func (s *Store) ListItems(ctx context.Context, filter backend.ItemFilter) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Item, 0, len(s.items))
	for _, raw := range s.items {
		item := s.viewLocked(raw)
		if matches(item, filter) {
			items = append(items, item)
		}
	}

	switch filter.OrderBy {
	case backend.OrderByStartAsc:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].StartTime, items[j].StartTime
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			}
			return a.Before(*b)
		})
	case backend.OrderByPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case backend.OrderByPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func matches(item models.Item, f backend.ItemFilter) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.IsAuction != nil && item.IsAuction != *f.IsAuction {
		return false
	}
	if f.Verified != nil && item.Verified != *f.Verified {
		return false
	}
	if f.WinnerUserID != "" && item.WinnerUserID != f.WinnerUserID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if item.AuctionStatus == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CreateItem inserts a new item
func (s *Store) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if err := ctx.Err(); err != nil {
		return models.Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	if item.ItemID == "" {
		item.ItemID = utils.GenerateID()
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ItemID] = item
	return s.viewLocked(item), nil
}

// viewLocked projects derived columns onto a stored item. Callers hold s.mu.
func (s *Store) viewLocked(item models.Item) models.Item {
	item.BidCount = len(s.bids[item.ItemID])
	if item.IsAuction {
		item.AuctionStatus = item.StatusAt(s.clock.Now())
		if item.AuctionStatus == models.AuctionEnded && item.WinnerUserID == "" {
			if leader, ok := leaderOf(s.bids[item.ItemID]); ok {
				item.WinnerUserID = leader.UserID
			}
		}
	}
	return item
}

// leaderOf returns the highest bid; ties go to the earliest bid
func leaderOf(bids []models.Bid) (models.Bid, bool) {
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > winning.Amount || (b.Amount == winning.Amount && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, true
}

// GetProfile returns a user's profile
func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return models.Profile{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, fmt.Errorf("get profile %s: %w", userID, marketerrors.ErrProfileNotFound)
	}
	return p, nil
}

// GetRole returns a user's role; users without an assignment are plain users
func (s *Store) GetRole(ctx context.Context, userID string) (models.Role, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if role, ok := s.roles[userID]; ok {
		return role, nil
	}
	return models.RoleUser, nil
}
