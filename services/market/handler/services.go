package handler

//go:generate mockgen -source=services.go -destination=mock_services.go -package=handler

import (
	"context"

	"vintage-vault/internal/addresses"
	"vintage-vault/internal/bidding"
	"vintage-vault/internal/catalog"
	"vintage-vault/internal/models"
	"vintage-vault/internal/orders"
	"vintage-vault/internal/session"
)

type BiddingServiceInterface interface {
	Item(ctx context.Context, itemID string) (models.Item, error)
	Leaderboard(ctx context.Context, itemID string) ([]models.Bid, error)
	UserBids(ctx context.Context, userID string) ([]models.UserBid, error)
	PlaceBid(ctx context.Context, sess *session.Session, itemID string, amount float64) (float64, error)
	OpenRoom(ctx context.Context, cfg bidding.RoomConfig) (*bidding.Room, error)
}

type CatalogServiceInterface interface {
	ListAuctions(ctx context.Context) ([]models.Item, error)
	ListByCategory(ctx context.Context, category models.Category, opts catalog.BrowseOptions) ([]models.Item, error)
	SubmitListing(ctx context.Context, sess *session.Session, in catalog.ListingInput) (models.Item, error)
	CreateAuction(ctx context.Context, sess *session.Session, in catalog.AuctionInput) (models.Item, error)
}

type OrderServiceInterface interface {
	Checkout(ctx context.Context, sess *session.Session, in orders.CheckoutInput) (models.Order, error)
	BuyNow(ctx context.Context, sess *session.Session, itemID string) (models.Order, error)
	ListOrders(ctx context.Context, sess *session.Session) ([]models.Order, error)
	WonItems(ctx context.Context, sess *session.Session) ([]models.Item, error)
	AddToCart(ctx context.Context, sess *session.Session, itemID string, quantity int) (models.CartEntry, error)
	Cart(ctx context.Context, sess *session.Session) (orders.Cart, error)
	RemoveFromCart(ctx context.Context, sess *session.Session, entryID string) error
}

type AddressServiceInterface interface {
	List(ctx context.Context, userID string) ([]models.Address, error)
	Create(ctx context.Context, userID string, in addresses.Input) (models.Address, error)
	Update(ctx context.Context, userID, addressID string, patch models.AddressPatch) (models.Address, error)
	Delete(ctx context.Context, userID, addressID string) error
	SetDefault(ctx context.Context, userID, addressID string) (models.Address, error)
}

type SessionServiceInterface interface {
	Issue(userID, email string) (string, error)
	Verify(ctx context.Context, token string) (*session.Session, error)
	SignOut(s *session.Session) error
}

type ProfileLookup interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
}
