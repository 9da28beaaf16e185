// Package addresses manages a user's shipping addresses and the choice of
// which one an order ships to.
package addresses

import (
	"context"
	"fmt"

	"vintage-vault/internal/backend"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/querycache"
	"vintage-vault/utils"

	"github.com/go-playground/validator/v10"
)

// KindAddresses is the cache kind of a user's address list
const KindAddresses = "addresses"

// DefaultCountry fills in addresses submitted without a country
const DefaultCountry = "India"

// Input is a new address as submitted by its owner
type Input struct {
	Name       string `json:"name" validate:"required,max=100"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"max=100"`
	Phone      string `json:"phone" validate:"required,max=20"`
	IsDefault  bool   `json:"is_default"`
}

type patchRules struct {
	Name       *string `validate:"omitempty,min=1,max=100"`
	Line1      *string `validate:"omitempty,min=1,max=200"`
	Line2      *string `validate:"omitempty,max=200"`
	City       *string `validate:"omitempty,min=1,max=100"`
	State      *string `validate:"omitempty,min=1,max=100"`
	PostalCode *string `validate:"omitempty,min=1,max=20"`
	Country    *string `validate:"omitempty,max=100"`
	Phone      *string `validate:"omitempty,min=1,max=20"`
}

// Service is the address book of every user
type Service struct {
	store    backend.Addresses
	cache    *querycache.Cache
	validate *validator.Validate
}

// NewService creates a Service. When store also implements
// backend.DefaultSwapper, SetDefault is a single atomic step.
func NewService(store backend.Addresses, cache *querycache.Cache) *Service {
	if cache == nil {
		cache = querycache.New(nil)
	}
	return &Service{store: store, cache: cache, validate: validator.New()}
}

func listKey(userID string) querycache.Key {
	return querycache.NewKey(KindAddresses, userID)
}

// List returns the user's addresses, default first
func (s *Service) List(ctx context.Context, userID string) ([]models.Address, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrUnauthenticated)
	}
	return querycache.Fetch(ctx, s.cache, listKey(userID), func(ctx context.Context) ([]models.Address, error) {
		list, err := s.store.ListAddresses(ctx, userID)
		return list, marketerrors.Remote("service", "list addresses of user "+userID, err)
	})
}

// Create stores a new address. Asking for it to be the default moves the
// default flag off the user's other addresses.
func (s *Service) Create(ctx context.Context, userID string, in Input) (models.Address, error) {
	if userID == "" {
		return models.Address{}, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrUnauthenticated)
	}
	if err := s.validate.Struct(in); err != nil {
		return models.Address{}, fmt.Errorf("service: %w - %v", marketerrors.ErrInvalidInput, err)
	}
	if in.Country == "" {
		in.Country = DefaultCountry
	}

	created, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (models.Address, error) {
		a, err := s.store.CreateAddress(ctx, models.Address{
			UserID:     userID,
			Name:       in.Name,
			Line1:      in.Line1,
			Line2:      in.Line2,
			City:       in.City,
			State:      in.State,
			PostalCode: in.PostalCode,
			Country:    in.Country,
			Phone:      in.Phone,
		})
		return a, marketerrors.Remote("service", "create address", err)
	}, listKey(userID))
	if err != nil {
		return models.Address{}, err
	}

	if in.IsDefault {
		return s.SetDefault(ctx, userID, created.AddressID)
	}
	return created, nil
}

// Update applies patch to one of the user's addresses
func (s *Service) Update(ctx context.Context, userID, addressID string, patch models.AddressPatch) (models.Address, error) {
	if userID == "" {
		return models.Address{}, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrUnauthenticated)
	}
	if err := s.validate.Struct(patchRules(patch)); err != nil {
		return models.Address{}, fmt.Errorf("service: %w - %v", marketerrors.ErrInvalidInput, err)
	}
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (models.Address, error) {
		a, err := s.store.UpdateAddress(ctx, userID, addressID, patch)
		return a, marketerrors.Remote("service", "update address "+addressID, err)
	}, listKey(userID))
}

// Delete removes one of the user's addresses
func (s *Service) Delete(ctx context.Context, userID, addressID string) error {
	if userID == "" {
		return fmt.Errorf("service: %w - empty user ID", marketerrors.ErrUnauthenticated)
	}
	_, err := querycache.Mutate(ctx, s.cache, func(ctx context.Context) (struct{}, error) {
		err := s.store.DeleteAddress(ctx, userID, addressID)
		return struct{}{}, marketerrors.Remote("service", "delete address "+addressID, err)
	}, listKey(userID))
	return err
}

// SetDefault makes addressID the user's only default address. Stores
// without an atomic swap get two writes, clear then set; if the second
// fails the user is left with no default, which Pick tolerates.
func (s *Service) SetDefault(ctx context.Context, userID, addressID string) (models.Address, error) {
	if userID == "" {
		return models.Address{}, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrUnauthenticated)
	}
	defer s.cache.Invalidate(listKey(userID))

	if swapper, ok := s.store.(backend.DefaultSwapper); ok {
		a, err := swapper.SwapDefaultAddress(ctx, userID, addressID)
		return a, marketerrors.Remote("service", "set default address "+addressID, err)
	}

	if _, err := s.store.GetAddress(ctx, userID, addressID); err != nil {
		return models.Address{}, marketerrors.Remote("service", "set default address "+addressID, err)
	}
	if err := s.store.ClearDefaultAddresses(ctx, userID); err != nil {
		return models.Address{}, marketerrors.Remote("service", "clear default addresses", err)
	}
	a, err := s.store.MarkDefaultAddress(ctx, userID, addressID)
	if err != nil {
		utils.Warn("User left without a default address", map[string]any{
			"user_id":    userID,
			"address_id": addressID,
			"error":      err.Error(),
		})
		return models.Address{}, marketerrors.Remote("service", "set default address "+addressID, err)
	}
	return a, nil
}

// Resolve picks the address an order ships to for the user
func (s *Service) Resolve(ctx context.Context, userID, selectedID string) (models.Address, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return models.Address{}, err
	}
	a, ok := Pick(list, selectedID)
	if !ok {
		if selectedID != "" && len(list) > 0 {
			return models.Address{}, fmt.Errorf("service: %w - %s", marketerrors.ErrAddressNotFound, selectedID)
		}
		return models.Address{}, fmt.Errorf("service: %w", marketerrors.ErrNoAddress)
	}
	return a, nil
}

// Pick chooses from addresses: the selected one, else the default, else
// the first. A selection that is not in the list picks nothing.
func Pick(addresses []models.Address, selectedID string) (models.Address, bool) {
	if selectedID != "" {
		for _, a := range addresses {
			if a.AddressID == selectedID {
				return a, true
			}
		}
		return models.Address{}, false
	}
	for _, a := range addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(addresses) > 0 {
		return addresses[0], true
	}
	return models.Address{}, false
}
