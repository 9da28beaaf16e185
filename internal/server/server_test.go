package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/session"
	handler "vintage-vault/services/market/handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, token string) (*session.Session, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*session.Session, error) {
	return f(ctx, token)
}

// tokens maps fixed test tokens to sessions
var tokens = verifierFunc(func(_ context.Context, token string) (*session.Session, error) {
	switch token {
	case "user-token":
		return &session.Session{UserID: "user1", Role: models.RoleUser, Token: token}, nil
	case "admin-token":
		return &session.Session{UserID: "admin1", Role: models.RoleAdmin, Token: token}, nil
	default:
		return nil, fmt.Errorf("session: %w - signature is invalid", marketerrors.ErrInvalidToken)
	}
})

func whoAmI(c *gin.Context) {
	s := session.FromContext(c.Request.Context())
	if s == nil {
		c.JSON(http.StatusOK, gin.H{"user_id": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": s.UserID})
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware, AuthMiddleware(tokens))
	r.GET("/public", whoAmI)
	r.GET("/private", RequireSession, whoAmI)
	r.GET("/admin", RequireAdmin, whoAmI)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	router := testRouter()

	tests := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
		expectedUser   string
	}{
		{name: "anonymous_public", path: "/public", expectedStatus: http.StatusOK, expectedUser: ""},
		{name: "anonymous_private", path: "/private", expectedStatus: http.StatusUnauthorized},
		{name: "bearer_private", path: "/private", header: "Bearer user-token", expectedStatus: http.StatusOK, expectedUser: "user1"},
		{name: "lowercase_scheme", path: "/private", header: "bearer user-token", expectedStatus: http.StatusOK, expectedUser: "user1"},
		{name: "query_token", path: "/private?access_token=user-token", expectedStatus: http.StatusOK, expectedUser: "user1"},
		{name: "invalid_token_on_public", path: "/public", header: "Bearer forged", expectedStatus: http.StatusUnauthorized},
		{name: "malformed_header", path: "/public", header: "Token user-token", expectedStatus: http.StatusUnauthorized},
		{name: "empty_bearer", path: "/public", header: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "admin_as_user", path: "/admin", header: "Bearer user-token", expectedStatus: http.StatusForbidden},
		{name: "admin_anonymous", path: "/admin", expectedStatus: http.StatusUnauthorized},
		{name: "admin_as_admin", path: "/admin", header: "Bearer admin-token", expectedStatus: http.StatusOK, expectedUser: "admin1"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			switch w.Code {
			case http.StatusOK:
				require.Equal(t, tc.expectedUser, resp["user_id"])
			case http.StatusUnauthorized:
				require.Equal(t, "/auth", w.Header().Get("Location"))
				require.Equal(t, "/auth", resp["redirect"])
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(RequestIDHeader, "trace-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, "trace-42", w.Header().Get(RequestIDHeader))
}

func TestSetupRouter(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	h := handler.NewMarketHandler(handler.Services{}, handler.LiveConfig{})

	tests := []struct {
		name           string
		opts           RouterOptions
		method         string
		path           string
		body           string
		header         string
		expectedStatus int
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "me_requires_session", method: http.MethodGet, path: "/me/bids", expectedStatus: http.StatusUnauthorized},
		{name: "orders_require_session", method: http.MethodPost, path: "/orders/checkout", body: `{}`, expectedStatus: http.StatusUnauthorized},
		{name: "bids_require_session", method: http.MethodPost, path: "/bids", body: `{}`, expectedStatus: http.StatusUnauthorized},
		{name: "auctions_require_admin", method: http.MethodPost, path: "/auctions", body: `{}`, header: "Bearer user-token", expectedStatus: http.StatusForbidden},
		{name: "sign_out_requires_session", method: http.MethodDelete, path: "/session", expectedStatus: http.StatusUnauthorized},
		{name: "demo_sign_in_hidden", method: http.MethodPost, path: "/session", body: `{}`, expectedStatus: http.StatusNotFound},
		{name: "demo_sign_in_mounted", opts: RouterOptions{DemoSignIn: true}, method: http.MethodPost, path: "/session", body: `{}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := SetupRouter(h, tokens, tc.opts)
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}
