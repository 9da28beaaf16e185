// Package backend describes the managed backend platform the service
// coordinates with: row queries and mutations, the place_bid procedure,
// and per-item change feeds. The platform owns every entity; callers only
// hold cached projections of it.
package backend

import (
	"context"

	"vintage-vault/internal/models"
	"vintage-vault/internal/realtime"
)

// ItemOrder selects the ordering of ListItems
type ItemOrder string

const (
	OrderByCreatedDesc ItemOrder = "created_desc"
	OrderByStartAsc    ItemOrder = "start_asc"
	OrderByPriceAsc    ItemOrder = "price_asc"
	OrderByPriceDesc   ItemOrder = "price_desc"
)

// ItemFilter narrows ListItems; zero fields do not filter
type ItemFilter struct {
	Category     models.Category
	IsAuction    *bool
	Verified     *bool
	Statuses     []models.AuctionStatus
	WinnerUserID string
	OrderBy      ItemOrder
	Limit        int
}

// Items is the item table
type Items interface {
	GetItem(ctx context.Context, itemID string) (models.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
}

// Bids is the bid table plus the atomic place_bid procedure, the only
// path by which a bid may be accepted
type Bids interface {
	ListItemBids(ctx context.Context, itemID string, limit int) ([]models.Bid, error)
	ListUserBids(ctx context.Context, userID string) ([]models.UserBid, error)
	PlaceBid(ctx context.Context, itemID, bidderID string, amount float64) (models.PlaceBidResult, error)
}

// Accounts exposes profiles and role assignments
type Accounts interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	GetRole(ctx context.Context, userID string) (models.Role, error)
}

// Addresses is the address table, every operation scoped to its owner
type Addresses interface {
	ListAddresses(ctx context.Context, userID string) ([]models.Address, error)
	GetAddress(ctx context.Context, userID, addressID string) (models.Address, error)
	CreateAddress(ctx context.Context, address models.Address) (models.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, patch models.AddressPatch) (models.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
	ClearDefaultAddresses(ctx context.Context, userID string) error
	MarkDefaultAddress(ctx context.Context, userID, addressID string) (models.Address, error)
}

// DefaultSwapper is implemented by stores that can move the default flag
// to addressID in a single atomic step
type DefaultSwapper interface {
	SwapDefaultAddress(ctx context.Context, userID, addressID string) (models.Address, error)
}

// Orders is the order table
type Orders interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// Cart is the cart table
type Cart interface {
	AddToCart(ctx context.Context, entry models.CartEntry) (models.CartEntry, error)
	ListCart(ctx context.Context, userID string) ([]models.CartEntry, error)
	RemoveFromCart(ctx context.Context, userID, entryID string) error
}

// Backend is the complete platform handle
type Backend interface {
	Items
	Bids
	Accounts
	Addresses
	Orders
	Cart
	realtime.Subscriber
	Close() error
}
