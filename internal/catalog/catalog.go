// Package catalog serves item browsing and the two ways items enter the
// catalog: user listings awaiting verification and admin-run auctions.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vintage-vault/internal/backend"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/realtime"
	"vintage-vault/internal/session"
	"vintage-vault/utils"

	"github.com/go-playground/validator/v10"
)

// Cache kinds of catalog listings
const (
	KindAuctions = "auctions"
	KindCategory = "category-items"
)

// DefaultBidIncrement applies to auctions created without an increment
const DefaultBidIncrement = 50

// Sort orders accepted by category browsing
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// BrowseOptions narrows a category listing
type BrowseOptions struct {
	VerifiedOnly bool
	Sort         string
}

// ListingInput is an item submitted by a user for verification
type ListingInput struct {
	Name          string  `json:"name" validate:"required,min=3,max=200"`
	Description   string  `json:"description" validate:"required,min=10,max=2000"`
	Price         float64 `json:"price" validate:"gte=1,lte=1000000"`
	Category      string  `json:"category" validate:"required,oneof=antiques celebrity fashion jewelry art"`
	CelebrityName string  `json:"celebrity_name" validate:"max=100"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
	IsAuction     bool    `json:"is_auction"`
}

// AuctionInput is an auction scheduled by an admin
type AuctionInput struct {
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	ImageURL        string    `json:"image_url" validate:"omitempty,url"`
	Category        string    `json:"category" validate:"required"`
	Price           float64   `json:"price" validate:"gt=0"`
	MinBidIncrement float64   `json:"min_bid_increment" validate:"gte=0"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// Service reads and writes the catalog
type Service struct {
	items            backend.Items
	cache            *querycache.Cache
	validate         *validator.Validate
	defaultIncrement float64
}

// NewService creates a Service; defaultIncrement <= 0 selects DefaultBidIncrement
func NewService(items backend.Items, cache *querycache.Cache, defaultIncrement float64) *Service {
	if cache == nil {
		cache = querycache.New(nil)
	}
	if defaultIncrement <= 0 {
		defaultIncrement = DefaultBidIncrement
	}
	return &Service{
		items:            items,
		cache:            cache,
		validate:         validator.New(),
		defaultIncrement: defaultIncrement,
	}
}

// ListAuctions returns live and upcoming auctions, soonest start first
func (s *Service) ListAuctions(ctx context.Context) ([]models.Item, error) {
	yes := true
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(KindAuctions), func(ctx context.Context) ([]models.Item, error) {
		items, err := s.items.ListItems(ctx, backend.ItemFilter{
			IsAuction: &yes,
			Statuses:  []models.AuctionStatus{models.AuctionLive, models.AuctionUpcoming},
			OrderBy:   backend.OrderByStartAsc,
		})
		return items, marketerrors.Remote("service", "list auctions", err)
	})
}

// ListByCategory returns the items of a category
func (s *Service) ListByCategory(ctx context.Context, category models.Category, opts BrowseOptions) ([]models.Item, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("service: %w - unknown category %q", marketerrors.ErrInvalidInput, category)
	}
	order, err := sortOrder(opts.Sort)
	if err != nil {
		return nil, err
	}

	key := querycache.NewKey(KindCategory, string(category), strconv.FormatBool(opts.VerifiedOnly), string(order))
	return querycache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]models.Item, error) {
		filter := backend.ItemFilter{Category: category, OrderBy: order}
		if opts.VerifiedOnly {
			yes := true
			filter.Verified = &yes
		}
		items, err := s.items.ListItems(ctx, filter)
		return items, marketerrors.Remote("service", "list category "+string(category), err)
	})
}

func sortOrder(sort string) (backend.ItemOrder, error) {
	switch sort {
	case "", SortNewest:
		return backend.OrderByCreatedDesc, nil
	case SortPriceAsc:
		return backend.OrderByPriceAsc, nil
	case SortPriceDesc:
		return backend.OrderByPriceDesc, nil
	default:
		return "", fmt.Errorf("service: %w - unknown sort %q", marketerrors.ErrInvalidInput, sort)
	}
}

// SubmitListing stores a user's item. It stays unverified until reviewed.
func (s *Service) SubmitListing(ctx context.Context, sess *session.Session, in ListingInput) (models.Item, error) {
	if !sess.Authenticated() {
		return models.Item{}, fmt.Errorf("service: %w - listing needs a signed-in user", marketerrors.ErrUnauthenticated)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validate.Struct(in); err != nil {
		return models.Item{}, fmt.Errorf("service: %w - %v", marketerrors.ErrInvalidInput, err)
	}

	item := models.Item{
		Name:          in.Name,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		Category:      models.Category(in.Category),
		CelebrityName: in.CelebrityName,
		SellerID:      sess.UserID,
		Price:         in.Price,
		IsAuction:     in.IsAuction,
		Verified:      false,
	}
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (models.Item, error) {
		created, err := s.items.CreateItem(ctx, item)
		return created, marketerrors.Remote("service", "create listing", err)
	}, querycache.NewKey(KindCategory, string(item.Category)), querycache.NewKey(KindAuctions))
}

// CreateAuction schedules a verified auction. Only admins may call it.
// The opening current bid is the start price.
func (s *Service) CreateAuction(ctx context.Context, sess *session.Session, in AuctionInput) (models.Item, error) {
	if !sess.Authenticated() {
		return models.Item{}, fmt.Errorf("service: %w - auction creation needs a signed-in user", marketerrors.ErrUnauthenticated)
	}
	if !sess.IsAdmin() {
		return models.Item{}, fmt.Errorf("service: %w - auction creation is reserved to admins", marketerrors.ErrForbidden)
	}
	if err := s.validate.Struct(in); err != nil {
		return models.Item{}, fmt.Errorf("service: %w - %v", marketerrors.ErrInvalidInput, err)
	}
	if !models.Category(in.Category).Valid() {
		return models.Item{}, fmt.Errorf("service: %w - unknown category %q", marketerrors.ErrInvalidInput, in.Category)
	}
	if in.MinBidIncrement == 0 {
		in.MinBidIncrement = s.defaultIncrement
	}

	start, end := in.StartTime.UTC(), in.EndTime.UTC()
	opening := in.Price
	item := models.Item{
		Name:            in.Name,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		Category:        models.Category(in.Category),
		SellerID:        sess.UserID,
		Price:           in.Price,
		CurrentBid:      &opening,
		MinBidIncrement: in.MinBidIncrement,
		StartTime:       &start,
		EndTime:         &end,
		AuctionStatus:   models.AuctionUpcoming,
		IsAuction:       true,
		Verified:        true,
	}
	created, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (models.Item, error) {
		created, err := s.items.CreateItem(ctx, item)
		return created, marketerrors.Remote("service", "create auction", err)
	}, querycache.NewKey(KindAuctions), querycache.NewKey(KindCategory, in.Category))
	if err != nil {
		return models.Item{}, err
	}

	utils.Info("Auction created", map[string]any{"item_id": created.ItemID, "user_id": sess.UserID})
	return created, nil
}

// Follow invalidates catalog listings whenever any item changes, until
// ctx ends or the feed closes
func (s *Service) Follow(ctx context.Context, feed realtime.Subscriber) error {
	for _, err := range realtime.Stream(ctx, feed, realtime.AllItems) {
		if err != nil {
			return err
		}
		s.cache.Invalidate(querycache.NewKey(KindAuctions))
		s.cache.Invalidate(querycache.NewKey(KindCategory))
	}
	return ctx.Err()
}
