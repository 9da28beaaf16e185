package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"vintage-vault/internal/bidding"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	var rejected *bidding.RejectedError
	switch {
	case errors.Is(err, marketerrors.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, marketerrors.ErrAddressNotFound):
		return http.StatusNotFound, "address not found"
	case errors.Is(err, marketerrors.ErrCartEntryNotFound):
		return http.StatusNotFound, "cart entry not found"
	case errors.Is(err, marketerrors.ErrProfileNotFound):
		return http.StatusNotFound, "profile not found"
	case errors.Is(err, marketerrors.ErrInvalidBidAmount):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, marketerrors.ErrNoAddress):
		return http.StatusBadRequest, "Please select a delivery address"
	case errors.Is(err, marketerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.As(err, &rejected):
		// the platform's own wording is shown as is
		return http.StatusConflict, rejected.Message
	case errors.Is(err, marketerrors.ErrBidRejected):
		return http.StatusConflict, "bid rejected"
	case errors.Is(err, marketerrors.ErrUnauthenticated), errors.Is(err, marketerrors.ErrInvalidToken):
		return http.StatusUnauthorized, "sign in required"
	case errors.Is(err, marketerrors.ErrForbidden):
		return http.StatusForbidden, "insufficient role"
	case errors.Is(err, marketerrors.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable, "backend unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError maps err to a response and logs it. Authorization errors
// point the client at the sign-in page.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if status == http.StatusUnauthorized {
		utils.JSONSignIn(c, status, err, message)
	} else {
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	}

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
