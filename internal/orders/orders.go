// Package orders turns won auctions and fixed-price items into orders and
// keeps each user's cart.
package orders

import (
	"context"
	"fmt"
	"strings"

	"vintage-vault/internal/addresses"
	"vintage-vault/internal/backend"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/session"
)

// Cache kinds of per-user order views
const (
	KindOrders = "orders"
	KindCart   = "cart"
)

// CheckoutInput selects the item to pay for and where it ships
type CheckoutInput struct {
	ItemID        string `json:"item_id"`
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method"`
}

// CartLine is a cart entry next to the item it refers to
type CartLine struct {
	models.CartEntry
	Item models.Item `json:"item"`
}

// Cart is a user's cart with its total at list prices
type Cart struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

// Store is the subset of the backend orders need
type Store interface {
	backend.Items
	backend.Orders
	backend.Cart
}

// Service places orders and manages carts
type Service struct {
	store     Store
	addresses *addresses.Service
	cache     *querycache.Cache
}

// NewService creates a Service shipping to addresses resolved by book
func NewService(store Store, book *addresses.Service, cache *querycache.Cache) *Service {
	if cache == nil {
		cache = querycache.New(nil)
	}
	return &Service{store: store, addresses: book, cache: cache}
}

func requireUser(sess *session.Session, what string) error {
	if !sess.Authenticated() {
		return fmt.Errorf("service: %w - %s needs a signed-in user", marketerrors.ErrUnauthenticated, what)
	}
	return nil
}

func (s *Service) item(ctx context.Context, itemID string) (models.Item, error) {
	if strings.TrimSpace(itemID) == "" {
		return models.Item{}, fmt.Errorf("service: %w - empty item ID", marketerrors.ErrInvalidInput)
	}
	item, err := s.store.GetItem(ctx, itemID)
	return item, marketerrors.Remote("service", "get item "+itemID, err)
}

// Checkout orders an item at its price, or an ended auction at its
// winning bid for the winner, and ships it to the selected address.
// Without a selection the default address is used, then the first one.
func (s *Service) Checkout(ctx context.Context, sess *session.Session, in CheckoutInput) (models.Order, error) {
	if err := requireUser(sess, "checkout"); err != nil {
		return models.Order{}, err
	}
	item, err := s.item(ctx, in.ItemID)
	if err != nil {
		return models.Order{}, err
	}
	if item.IsAuction {
		switch {
		case item.AuctionStatus != models.AuctionEnded:
			return models.Order{}, fmt.Errorf("service: %w - auction %s has not ended", marketerrors.ErrInvalidInput, item.ItemID)
		case item.WinnerUserID == "":
			return models.Order{}, fmt.Errorf("service: %w - auction %s ended without bids", marketerrors.ErrInvalidInput, item.ItemID)
		case item.WinnerUserID != sess.UserID:
			return models.Order{}, fmt.Errorf("service: %w - auction %s was won by another user", marketerrors.ErrForbidden, item.ItemID)
		}
	}

	address, err := s.addresses.Resolve(ctx, sess.UserID, in.AddressID)
	if err != nil {
		return models.Order{}, err
	}

	price := item.BidBase()
	order := models.Order{
		ItemID:             item.ItemID,
		UserID:             sess.UserID,
		AddressID:          address.AddressID,
		Price:              price,
		TotalAmount:        price,
		PaymentMethod:      in.PaymentMethod,
		PaymentStatus:      models.OrderPending,
		OrderStatus:        models.OrderPending,
		ShippingName:       address.Name,
		ShippingAddress:    joinLines(address.Line1, address.Line2),
		ShippingCity:       address.City,
		ShippingPostalCode: address.PostalCode,
		ShippingPhone:      address.Phone,
	}
	return s.create(ctx, order)
}

// BuyNow orders a fixed-price item at its list price. Shipping is chosen
// later, at payment.
func (s *Service) BuyNow(ctx context.Context, sess *session.Session, itemID string) (models.Order, error) {
	if err := requireUser(sess, "buy now"); err != nil {
		return models.Order{}, err
	}
	item, err := s.item(ctx, itemID)
	if err != nil {
		return models.Order{}, err
	}
	if item.IsAuction {
		return models.Order{}, fmt.Errorf("service: %w - item %s is sold by auction", marketerrors.ErrInvalidInput, itemID)
	}
	return s.create(ctx, models.Order{
		ItemID:        item.ItemID,
		UserID:        sess.UserID,
		Price:         item.Price,
		TotalAmount:   item.Price,
		PaymentStatus: models.OrderPending,
		OrderStatus:   models.OrderPending,
	})
}

func (s *Service) create(ctx context.Context, order models.Order) (models.Order, error) {
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (models.Order, error) {
		created, err := s.store.CreateOrder(ctx, order)
		return created, marketerrors.Remote("service", "create order for item "+order.ItemID, err)
	}, querycache.NewKey(KindOrders, order.UserID))
}

func joinLines(lines ...string) string {
	parts := lines[:0:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, ", ")
}

// ListOrders returns the user's orders, newest first
func (s *Service) ListOrders(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	if err := requireUser(sess, "orders"); err != nil {
		return nil, err
	}
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(KindOrders, sess.UserID), func(ctx context.Context) ([]models.Order, error) {
		list, err := s.store.ListOrders(ctx, sess.UserID)
		return list, marketerrors.Remote("service", "list orders of user "+sess.UserID, err)
	})
}

// WonItems returns the ended auctions the user won
func (s *Service) WonItems(ctx context.Context, sess *session.Session) ([]models.Item, error) {
	if err := requireUser(sess, "won items"); err != nil {
		return nil, err
	}
	// auctions end on the clock without a write, so this view is never cached
	yes := true
	items, err := s.store.ListItems(ctx, backend.ItemFilter{
		IsAuction:    &yes,
		WinnerUserID: sess.UserID,
		Statuses:     []models.AuctionStatus{models.AuctionEnded},
	})
	return items, marketerrors.Remote("service", "list items won by "+sess.UserID, err)
}

// AddToCart puts an item in the user's cart; quantity defaults to 1
func (s *Service) AddToCart(ctx context.Context, sess *session.Session, itemID string, quantity int) (models.CartEntry, error) {
	if err := requireUser(sess, "cart"); err != nil {
		return models.CartEntry{}, err
	}
	if quantity < 0 {
		return models.CartEntry{}, fmt.Errorf("service: %w - negative quantity", marketerrors.ErrInvalidInput)
	}
	if quantity == 0 {
		quantity = 1
	}
	if _, err := s.item(ctx, itemID); err != nil {
		return models.CartEntry{}, err
	}
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (models.CartEntry, error) {
		e, err := s.store.AddToCart(ctx, models.CartEntry{UserID: sess.UserID, ItemID: itemID, Quantity: quantity})
		return e, marketerrors.Remote("service", "add item "+itemID+" to cart", err)
	}, querycache.NewKey(KindCart, sess.UserID))
}

// Cart returns the user's cart with the total at current list prices.
// Entries whose item disappeared are dropped.
func (s *Service) Cart(ctx context.Context, sess *session.Session) (Cart, error) {
	if err := requireUser(sess, "cart"); err != nil {
		return Cart{}, err
	}
	return querycache.Fetch(ctx, s.cache, querycache.NewKey(KindCart, sess.UserID), func(ctx context.Context) (Cart, error) {
		entries, err := s.store.ListCart(ctx, sess.UserID)
		if err != nil {
			return Cart{}, marketerrors.Remote("service", "list cart of user "+sess.UserID, err)
		}
		cart := Cart{Lines: make([]CartLine, 0, len(entries))}
		for _, e := range entries {
			item, err := s.item(ctx, e.ItemID)
			if err != nil {
				if marketerrors.IsNotFound(err) {
					continue
				}
				return Cart{}, err
			}
			cart.Lines = append(cart.Lines, CartLine{CartEntry: e, Item: item})
			cart.Total += item.Price * float64(e.Quantity)
		}
		return cart, nil
	})
}

// RemoveFromCart deletes an entry of the user's cart
func (s *Service) RemoveFromCart(ctx context.Context, sess *session.Session, entryID string) error {
	if err := requireUser(sess, "cart"); err != nil {
		return err
	}
	_, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (struct{}, error) {
		err := s.store.RemoveFromCart(ctx, sess.UserID, entryID)
		return struct{}{}, marketerrors.Remote("service", "remove cart entry "+entryID, err)
	}, querycache.NewKey(KindCart, sess.UserID))
	return err
}
