package memory

import (
	"context"
	"fmt"
	"sort"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/utils"
)

// ListAddresses returns a user's addresses, default first
func (s *Store) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Address
	for _, a := range s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// GetAddress returns one of a user's addresses
func (s *Store) GetAddress(ctx context.Context, userID, addressID string) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownedLocked(userID, addressID)
}

func (s *Store) ownedLocked(userID, addressID string) (models.Address, error) {
	a, ok := s.addresses[addressID]
	if !ok || a.UserID != userID {
		return models.Address{}, fmt.Errorf("address %s for user %s: %w", addressID, userID, marketerrors.ErrAddressNotFound)
	}
	return a, nil
}

// CreateAddress inserts an address
func (s *Store) CreateAddress(ctx context.Context, address models.Address) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	address.AddressID = utils.GenerateID()
	address.CreatedAt = s.clock.Now().UTC()
	s.addresses[address.AddressID] = address
	return address, nil
}

// UpdateAddress applies patch to one of a user's addresses
func (s *Store) UpdateAddress(ctx context.Context, userID, addressID string, patch models.AddressPatch) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedLocked(userID, addressID)
	if err != nil {
		return models.Address{}, err
	}
	patch.Apply(&a)
	s.addresses[addressID] = a
	return a, nil
}

// DeleteAddress removes one of a user's addresses
func (s *Store) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedLocked(userID, addressID); err != nil {
		return err
	}
	delete(s.addresses, addressID)
	return nil
}

// ClearDefaultAddresses unsets the default flag on all of a user's addresses
func (s *Store) ClearDefaultAddresses(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearDefaultsLocked(userID)
	return nil
}

func (s *Store) clearDefaultsLocked(userID string) {
	for id, a := range s.addresses {
		if a.UserID == userID && a.IsDefault {
			a.IsDefault = false
			s.addresses[id] = a
		}
	}
}

// MarkDefaultAddress sets the default flag on one address without touching the others
func (s *Store) MarkDefaultAddress(ctx context.Context, userID, addressID string) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedLocked(userID, addressID)
	if err != nil {
		return models.Address{}, err
	}
	a.IsDefault = true
	s.addresses[addressID] = a
	return a, nil
}

// SwapDefaultAddress moves the default flag to addressID atomically
func (s *Store) SwapDefaultAddress(ctx context.Context, userID, addressID string) (models.Address, error) {
	if err := ctx.Err(); err != nil {
		return models.Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedLocked(userID, addressID)
	if err != nil {
		return models.Address{}, err
	}
	s.clearDefaultsLocked(userID)
	a.IsDefault = true
	s.addresses[addressID] = a
	return a, nil
}

// CreateOrder inserts an order
func (s *Store) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[order.ItemID]; !ok {
		return models.Order{}, fmt.Errorf("create order for item %s: %w", order.ItemID, marketerrors.ErrItemNotFound)
	}
	order.OrderID = utils.GenerateID()
	order.CreatedAt = s.clock.Now().UTC()
	s.orders[order.UserID] = append(s.orders[order.UserID], order)
	return order, nil
}

// ListOrders returns a user's orders, newest first
func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]models.Order(nil), s.orders[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AddToCart inserts a cart entry
func (s *Store) AddToCart(ctx context.Context, entry models.CartEntry) (models.CartEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.CartEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[entry.ItemID]; !ok {
		return models.CartEntry{}, fmt.Errorf("add item %s to cart: %w", entry.ItemID, marketerrors.ErrItemNotFound)
	}
	entry.EntryID = utils.GenerateID()
	entry.CreatedAt = s.clock.Now().UTC()
	s.cart[entry.UserID] = append(s.cart[entry.UserID], entry)
	return entry, nil
}

// ListCart returns a user's cart entries in insertion order
func (s *Store) ListCart(ctx context.Context, userID string) ([]models.CartEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartEntry(nil), s.cart[userID]...), nil
}

// RemoveFromCart deletes a user's cart entry
func (s *Store) RemoveFromCart(ctx context.Context, userID, entryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cart[userID]
	for i, e := range entries {
		if e.EntryID == entryID {
			s.cart[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove cart entry %s: %w", entryID, marketerrors.ErrCartEntryNotFound)
}
