package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/session"
	"vintage-vault/services/market/helpers"
	"vintage-vault/utils"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// TokenVerifier turns a bearer token into a session
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*session.Session, error)
}

// RequestIDMiddleware tags every request with an id, reusing the caller's when given
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = utils.GenerateID()
	}
	c.Set(requestIDKey, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString(requestIDKey),
	}
	if s := session.FromContext(c.Request.Context()); s != nil {
		fields["user_id"] = s.UserID
	}
	utils.Info("HTTP Request", fields)
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on an EventSource, so the access_token query parameter is accepted too.
func bearerToken(c *gin.Context) (string, error) {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", fmt.Errorf("server: %w - malformed authorization header", marketerrors.ErrInvalidToken)
		}
		return strings.TrimSpace(token), nil
	}
	return c.Query("access_token"), nil
}

// AuthMiddleware attaches the caller's session to the request context.
// Requests without a token go through anonymously; a bad token is refused.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			helpers.RespondError(c, "AuthMiddleware", err, map[string]any{"path": c.Request.URL.Path})
			c.Abort()
			return
		}
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		sess, err := verifier.Verify(ctx, token)
		if err != nil {
			helpers.RespondError(c, "AuthMiddleware", err, map[string]any{"path": c.Request.URL.Path})
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(session.WithSession(ctx, sess))
		c.Next()
	}
}

// RequireSession refuses anonymous callers
func RequireSession(c *gin.Context) {
	if !session.FromContext(c.Request.Context()).Authenticated() {
		helpers.RespondError(c, "RequireSession", marketerrors.ErrUnauthenticated, map[string]any{"path": c.Request.URL.Path})
		c.Abort()
		return
	}
	c.Next()
}

// RequireAdmin refuses callers without the admin role
func RequireAdmin(c *gin.Context) {
	sess := session.FromContext(c.Request.Context())
	switch {
	case !sess.Authenticated():
		helpers.RespondError(c, "RequireAdmin", marketerrors.ErrUnauthenticated, map[string]any{"path": c.Request.URL.Path})
	case !sess.IsAdmin():
		helpers.RespondError(c, "RequireAdmin", fmt.Errorf("server: %w - admin role required", marketerrors.ErrForbidden), map[string]any{
			"path":    c.Request.URL.Path,
			"user_id": sess.UserID,
		})
	default:
		c.Next()
		return
	}
	c.Abort()
}
