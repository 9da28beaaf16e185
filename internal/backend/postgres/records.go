package postgres

import (
	"context"
	"errors"
	"fmt"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"

	"github.com/jackc/pgx/v5"
)

const addressColumns = `id, user_id, name, line1, line2, city, state, postal_code, country, phone, is_default, created_at`

func scanAddress(row pgx.Row) (models.Address, error) {
	var a models.Address
	err := row.Scan(&a.AddressID, &a.UserID, &a.Name, &a.Line1, &a.Line2, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.Phone, &a.IsDefault, &a.CreatedAt)
	return a, err
}

func addressResult(a models.Address, err error, op, addressID string) (models.Address, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Address{}, fmt.Errorf("%s %s: %w", op, addressID, marketerrors.ErrAddressNotFound)
	}
	if err != nil {
		return models.Address{}, fmt.Errorf("%s %s: %w", op, addressID, err)
	}
	return a, nil
}

// ListAddresses returns a user's addresses, default first
func (s *Store) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1 ORDER BY is_default DESC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses of %s: %w", userID, err)
	}
	defer rows.Close()

	out := []models.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("list addresses of %s: %w", userID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAddress returns one of the user's addresses
func (s *Store) GetAddress(ctx context.Context, userID, addressID string) (models.Address, error) {
	a, err := scanAddress(s.pool.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses
		WHERE id = $1 AND user_id = $2`, addressID, userID))
	return addressResult(a, err, "get address", addressID)
}

// CreateAddress inserts an address
func (s *Store) CreateAddress(ctx context.Context, a models.Address) (models.Address, error) {
	created, err := scanAddress(s.pool.QueryRow(ctx, `
		INSERT INTO addresses (user_id, name, line1, line2, city, state, postal_code, country, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+addressColumns,
		a.UserID, a.Name, a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country, a.Phone, a.IsDefault))
	if err != nil {
		return models.Address{}, fmt.Errorf("create address: %w", err)
	}
	return created, nil
}

// UpdateAddress applies patch to one of the user's addresses
func (s *Store) UpdateAddress(ctx context.Context, userID, addressID string, p models.AddressPatch) (models.Address, error) {
	a, err := scanAddress(s.pool.QueryRow(ctx, `
		UPDATE addresses SET
			name = COALESCE($3::text, name),
			line1 = COALESCE($4::text, line1),
			line2 = COALESCE($5::text, line2),
			city = COALESCE($6::text, city),
			state = COALESCE($7::text, state),
			postal_code = COALESCE($8::text, postal_code),
			country = COALESCE($9::text, country),
			phone = COALESCE($10::text, phone)
		WHERE id = $1 AND user_id = $2
		RETURNING `+addressColumns,
		addressID, userID, p.Name, p.Line1, p.Line2, p.City, p.State, p.PostalCode, p.Country, p.Phone))
	return addressResult(a, err, "update address", addressID)
}

// DeleteAddress removes one of the user's addresses
func (s *Store) DeleteAddress(ctx context.Context, userID, addressID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		return fmt.Errorf("delete address %s: %w", addressID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete address %s: %w", addressID, marketerrors.ErrAddressNotFound)
	}
	return nil
}

func clearDefaults(ctx context.Context, db DBTX, userID string) error {
	if _, err := db.Exec(ctx, `UPDATE addresses SET is_default = false WHERE user_id = $1 AND is_default`, userID); err != nil {
		return fmt.Errorf("clear default addresses of %s: %w", userID, err)
	}
	return nil
}

func markDefault(ctx context.Context, db DBTX, userID, addressID string) (models.Address, error) {
	a, err := scanAddress(db.QueryRow(ctx, `UPDATE addresses SET is_default = true
		WHERE id = $1 AND user_id = $2 RETURNING `+addressColumns, addressID, userID))
	return addressResult(a, err, "mark default address", addressID)
}

// ClearDefaultAddresses unsets the default flag on all of a user's addresses
func (s *Store) ClearDefaultAddresses(ctx context.Context, userID string) error {
	return clearDefaults(ctx, s.pool, userID)
}

// MarkDefaultAddress sets the default flag on one address
func (s *Store) MarkDefaultAddress(ctx context.Context, userID, addressID string) (models.Address, error) {
	return markDefault(ctx, s.pool, userID, addressID)
}

// SwapDefaultAddress clears and sets the default flag in one transaction
func (s *Store) SwapDefaultAddress(ctx context.Context, userID, addressID string) (models.Address, error) {
	var out models.Address
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := clearDefaults(ctx, tx, userID); err != nil {
			return err
		}
		a, err := markDefault(ctx, tx, userID, addressID)
		out = a
		return err
	})
	if err != nil {
		return models.Address{}, err
	}
	return out, nil
}

const orderColumns = `id, item_id, user_id, COALESCE(address_id, ''), price::float8, COALESCE(total_amount, price)::float8,
	COALESCE(payment_method, ''), payment_status, order_status, COALESCE(shipping_name, ''), COALESCE(shipping_address, ''),
	COALESCE(shipping_city, ''), COALESCE(shipping_postal_code, ''), COALESCE(shipping_phone, ''), created_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var (
		o               models.Order
		payment, status string
	)
	err := row.Scan(&o.OrderID, &o.ItemID, &o.UserID, &o.AddressID, &o.Price, &o.TotalAmount,
		&o.PaymentMethod, &payment, &status, &o.ShippingName, &o.ShippingAddress,
		&o.ShippingCity, &o.ShippingPostalCode, &o.ShippingPhone, &o.CreatedAt)
	o.PaymentStatus = models.OrderStatus(payment)
	o.OrderStatus = models.OrderStatus(status)
	return o, err
}

// CreateOrder inserts an order
func (s *Store) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	created, err := scanOrder(s.pool.QueryRow(ctx, `
		INSERT INTO orders (item_id, user_id, address_id, price, total_amount, payment_method, payment_status,
			order_status, shipping_name, shipping_address, shipping_city, shipping_postal_code, shipping_phone)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8,
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''))
		RETURNING `+orderColumns,
		o.ItemID, o.UserID, o.AddressID, o.Price, o.TotalAmount, o.PaymentMethod, string(o.PaymentStatus),
		string(o.OrderStatus), o.ShippingName, o.ShippingAddress, o.ShippingCity, o.ShippingPostalCode, o.ShippingPhone))
	if isForeignKeyViolation(err) {
		return models.Order{}, fmt.Errorf("create order for item %s: %w", o.ItemID, marketerrors.ErrItemNotFound)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("create order for item %s: %w", o.ItemID, err)
	}
	return created, nil
}

// ListOrders returns a user's orders, newest first
func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders of %s: %w", userID, err)
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders of %s: %w", userID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// AddToCart inserts a cart entry
func (s *Store) AddToCart(ctx context.Context, e models.CartEntry) (models.CartEntry, error) {
	err := s.pool.QueryRow(ctx, `INSERT INTO cart (user_id, item_id, quantity) VALUES ($1, $2, $3)
		RETURNING id, created_at`, e.UserID, e.ItemID, e.Quantity).Scan(&e.EntryID, &e.CreatedAt)
	if isForeignKeyViolation(err) {
		return models.CartEntry{}, fmt.Errorf("add item %s to cart: %w", e.ItemID, marketerrors.ErrItemNotFound)
	}
	if err != nil {
		return models.CartEntry{}, fmt.Errorf("add item %s to cart: %w", e.ItemID, err)
	}
	return e, nil
}

// ListCart returns a user's cart entries in insertion order
func (s *Store) ListCart(ctx context.Context, userID string) ([]models.CartEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, user_id, item_id, quantity, created_at FROM cart
		WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart of %s: %w", userID, err)
	}
	defer rows.Close()

	out := []models.CartEntry{}
	for rows.Next() {
		var e models.CartEntry
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.ItemID, &e.Quantity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list cart of %s: %w", userID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RemoveFromCart deletes a user's cart entry
func (s *Store) RemoveFromCart(ctx context.Context, userID, entryID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cart WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return fmt.Errorf("remove cart entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("remove cart entry %s: %w", entryID, marketerrors.ErrCartEntryNotFound)
	}
	return nil
}
