package marketerrors

import (
	"context"
	"errors"
	"fmt"
)

// Lookup errors
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrCartEntryNotFound = errors.New("cart entry not found")
	ErrProfileNotFound   = errors.New("profile not found")
)

// Validation errors, detected locally and never sent to the backend
var (
	ErrInvalidBidAmount = errors.New("invalid bid amount")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoAddress        = errors.New("please select a delivery address")
)

// Remote errors
var (
	ErrBidRejected       = errors.New("bid rejected")
	ErrRemoteUnavailable = errors.New("backend unavailable")
)

// Authorization errors
var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrForbidden       = errors.New("insufficient role")
	ErrInvalidToken    = errors.New("invalid session token")
)

var domain = []error{
	ErrItemNotFound, ErrAddressNotFound, ErrCartEntryNotFound, ErrProfileNotFound,
	ErrInvalidBidAmount, ErrInvalidInput, ErrNoAddress,
	ErrBidRejected, ErrRemoteUnavailable,
	ErrUnauthenticated, ErrForbidden, ErrInvalidToken,
}

// Remote classifies a failed backend call. Known errors and context
// cancellation keep their identity; anything else is reported as
// ErrRemoteUnavailable with the cause still attached.
func Remote(layer, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: failed to %s: %w", layer, op, err)
	}
	for _, known := range domain {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: failed to %s: %w", layer, op, err)
		}
	}
	return fmt.Errorf("%s: %w - %s: %w", layer, ErrRemoteUnavailable, op, err)
}

// IsNotFound reports whether err is one of the lookup errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrAddressNotFound) ||
		errors.Is(err, ErrCartEntryNotFound) ||
		errors.Is(err, ErrProfileNotFound)
}
