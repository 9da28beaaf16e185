package bidding

import (
	"context"
	"fmt"
	"math"
	"sync"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/realtime"
	"vintage-vault/internal/session"
)

//go:generate mockgen -source=bidding.go -destination=mock_remote.go -package=bidding

// Cache kinds of the three views a bid affects
const (
	KindItem     = "auction-item"
	KindBids     = "auction-bids"
	KindUserBids = "user-bids"
)

// DefaultLeaderboardLimit is the leaderboard size when none is configured
const DefaultLeaderboardLimit = 10

// Remote is the slice of the backend the coordinator depends on
type Remote interface {
	GetItem(ctx context.Context, itemID string) (models.Item, error)
	ListItemBids(ctx context.Context, itemID string, limit int) ([]models.Bid, error)
	ListUserBids(ctx context.Context, userID string) ([]models.UserBid, error)
	PlaceBid(ctx context.Context, itemID, bidderID string, amount float64) (models.PlaceBidResult, error)
}

// RejectedError is a structured failure returned by place_bid. Its
// message is shown to the user verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Unwrap() error { return marketerrors.ErrBidRejected }

// MinNextBid is the smallest amount the next bid on item may carry
func MinNextBid(item models.Item) float64 {
	return item.BidBase() + item.MinBidIncrement
}

// ValidateBid rejects amounts that are not finite, not positive or below MinNextBid
func ValidateBid(item models.Item, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("service: %w - amount is not a number", marketerrors.ErrInvalidBidAmount)
	}
	if amount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", marketerrors.ErrInvalidBidAmount)
	}
	if floor := MinNextBid(item); amount < floor {
		return fmt.Errorf("service: %w - minimum bid is %.2f", marketerrors.ErrInvalidBidAmount, floor)
	}
	return nil
}

// Coordinator validates bids, forwards them to place_bid and keeps the
// item, leaderboard and bid-history views in the cache consistent with
// the backend.
type Coordinator struct {
	remote Remote
	cache  *querycache.Cache
	limit  int

	mu       sync.Mutex
	watchers map[string]map[*Room]struct{} // key: itemID -> value: open rooms
}

// NewCoordinator creates a Coordinator reading through cache
func NewCoordinator(remote Remote, cache *querycache.Cache, leaderboardLimit int) *Coordinator {
	if leaderboardLimit <= 0 {
		leaderboardLimit = DefaultLeaderboardLimit
	}
	if cache == nil {
		cache = querycache.New(nil)
	}
	return &Coordinator{
		remote:   remote,
		cache:    cache,
		limit:    leaderboardLimit,
		watchers: make(map[string]map[*Room]struct{}),
	}
}

func itemKey(itemID string) querycache.Key     { return querycache.NewKey(KindItem, itemID) }
func bidsKey(itemID string) querycache.Key     { return querycache.NewKey(KindBids, itemID) }
func userBidsKey(userID string) querycache.Key { return querycache.NewKey(KindUserBids, userID) }

// Item returns the cached item, fetching it when missing or stale
func (c *Coordinator) Item(ctx context.Context, itemID string) (models.Item, error) {
	if itemID == "" {
		return models.Item{}, fmt.Errorf("service: %w - empty item ID", marketerrors.ErrInvalidInput)
	}
	return querycache.Fetch(ctx, c.cache, itemKey(itemID), func(ctx context.Context) (models.Item, error) {
		item, err := c.remote.GetItem(ctx, itemID)
		return item, marketerrors.Remote("service", "get item "+itemID, err)
	})
}

// Leaderboard returns the top bids of an item, highest first
func (c *Coordinator) Leaderboard(ctx context.Context, itemID string) ([]models.Bid, error) {
	if itemID == "" {
		return nil, fmt.Errorf("service: %w - empty item ID", marketerrors.ErrInvalidInput)
	}
	return querycache.Fetch(ctx, c.cache, bidsKey(itemID), func(ctx context.Context) ([]models.Bid, error) {
		bids, err := c.remote.ListItemBids(ctx, itemID, c.limit)
		return bids, marketerrors.Remote("service", "list bids for item "+itemID, err)
	})
}

// UserBids returns a user's bid history, newest first
func (c *Coordinator) UserBids(ctx context.Context, userID string) ([]models.UserBid, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrInvalidInput)
	}
	return querycache.Fetch(ctx, c.cache, userBidsKey(userID), func(ctx context.Context) ([]models.UserBid, error) {
		bids, err := c.remote.ListUserBids(ctx, userID)
		return bids, marketerrors.Remote("service", "list bids of user "+userID, err)
	})
}

// PlaceBid validates amount against the item's floor and submits it to
// place_bid. Nothing is sent when validation fails. A structured failure
// comes back as *RejectedError and leaves every view untouched; a success
// invalidates the item, its leaderboard and the bidder's history.
func (c *Coordinator) PlaceBid(ctx context.Context, sess *session.Session, itemID string, amount float64) (float64, error) {
	if !sess.Authenticated() {
		return 0, fmt.Errorf("service: %w - bidding needs a signed-in user", marketerrors.ErrUnauthenticated)
	}

	item, err := c.Item(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if err := ValidateBid(item, amount); err != nil {
		return 0, err
	}

	rooms := c.watching(itemID, sess.UserID)
	for _, r := range rooms {
		r.setPending(amount)
	}

	res, err := querycache.Mutate(ctx, c.cache, func(ctx context.Context) (models.PlaceBidResult, error) {
		res, err := c.remote.PlaceBid(ctx, itemID, sess.UserID, amount)
		if err != nil {
			return res, marketerrors.Remote("service", "place bid on item "+itemID, err)
		}
		if !res.OK {
			return res, &RejectedError{Message: res.Error}
		}
		return res, nil
	}, itemKey(itemID), bidsKey(itemID), userBidsKey(sess.UserID))

	for _, r := range rooms {
		r.settle(err)
	}
	if err != nil {
		return 0, err
	}

	if res.NewHigh != nil {
		return *res.NewHigh, nil
	}
	return amount, nil
}

// HandleChange reconciles the cache with a push notification. The item,
// leaderboard and bidder history are invalidated whatever the payload says.
// A notice is returned only for bids placed by someone other than viewerID.
func (c *Coordinator) HandleChange(ev realtime.ChangeEvent, viewerID string) (Notice, bool) {
	c.cache.Invalidate(itemKey(ev.ItemID))
	c.cache.Invalidate(bidsKey(ev.ItemID))

	if ev.Kind != realtime.BidInserted || ev.Bid == nil {
		return Notice{}, false
	}
	c.cache.Invalidate(userBidsKey(ev.Bid.UserID))
	if ev.Bid.UserID == viewerID {
		return Notice{}, false
	}
	return Notice{
		Kind:    NoticeNewBid,
		Title:   "New bid placed!",
		Message: fmt.Sprintf("%s placed a bid of %.2f", ev.Bid.BidderName, ev.Bid.Amount),
	}, true
}

func (c *Coordinator) watch(r *Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.watchers[r.itemID]
	if !ok {
		set = make(map[*Room]struct{})
		c.watchers[r.itemID] = set
	}
	set[r] = struct{}{}
}

func (c *Coordinator) unwatch(r *Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.watchers[r.itemID]; ok {
		delete(set, r)
		if len(set) == 0 {
			delete(c.watchers, r.itemID)
		}
	}
}

func (c *Coordinator) watching(itemID, userID string) []*Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Room
	for r := range c.watchers[itemID] {
		if r.viewerID() == userID {
			out = append(out, r)
		}
	}
	return out
}
