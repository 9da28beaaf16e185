package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"vintage-vault/internal/addresses"
	"vintage-vault/internal/backend/memory"
	"vintage-vault/internal/bidding"
	"vintage-vault/internal/catalog"
	"vintage-vault/internal/models"
	"vintage-vault/internal/orders"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/server"
	"vintage-vault/internal/session"
	"vintage-vault/services/market/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// testApp is the full service wired over the in-memory backend
type testApp struct {
	router   *gin.Engine
	store    *memory.Store
	sessions *session.Manager
	clock    *testingclock.FakeClock
}

// SetupTestApp wires the router the way main does, seeded with items
func SetupTestApp(t *testing.T, items ...models.Item) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := testingclock.NewFakeClock(epoch)
	store := memory.NewStore(clk)
	t.Cleanup(func() { _ = store.Close() })

	store.AddProfile(models.Profile{UserID: "user1", Email: "asha@example.com", FullName: "Asha"})
	store.AddProfile(models.Profile{UserID: "user2", Email: "grace@example.com", FullName: "Grace"})
	store.AddProfile(models.Profile{UserID: "admin1", Email: "curator@example.com", FullName: "Curator"})
	store.SetRole("admin1", models.RoleAdmin)
	for _, item := range items {
		store.AddItem(item)
	}

	cache := querycache.New(clk)
	sessions := session.NewManager([]byte("integration-secret"), time.Hour, store, clk)
	book := addresses.NewService(store, cache)

	h := handler.NewMarketHandler(handler.Services{
		Bidding:   bidding.NewCoordinator(store, cache, 10),
		Catalog:   catalog.NewService(store, cache, 50),
		Orders:    orders.NewService(store, book, cache),
		Addresses: book,
		Sessions:  sessions,
		Profiles:  store,
	}, handler.LiveConfig{Feed: store, Sessions: sessions.Broker(), Clock: clk})

	return &testApp{
		router:   server.SetupRouter(h, sessions, server.RouterOptions{DemoSignIn: true}),
		store:    store,
		sessions: sessions,
		clock:    clk,
	}
}

// Token signs a session token for userID
func (a *testApp) Token(t *testing.T, userID string) string {
	t.Helper()
	token, err := a.sessions.Issue(userID, userID+"@example.com")
	require.NoError(t, err)
	return token
}

// ExecuteRequestAndParse executes an HTTP request on the app and parses the envelope
func (a *testApp) ExecuteRequestAndParse(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	a.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

func liveAuction(id string, price, increment float64, end time.Duration) models.Item {
	start, stop := epoch.Add(-time.Hour), epoch.Add(end)
	return models.Item{
		ItemID:          id,
		Name:            "Auction " + id,
		Category:        models.CategoryWatches,
		Price:           price,
		MinBidIncrement: increment,
		StartTime:       &start,
		EndTime:         &stop,
		IsAuction:       true,
		Verified:        true,
		CreatedAt:       start,
	}
}

func fixedPrice(id string, price float64) models.Item {
	return models.Item{
		ItemID:    id,
		Name:      "Item " + id,
		Category:  models.CategoryAntiques,
		Price:     price,
		Verified:  true,
		CreatedAt: epoch.Add(-24 * time.Hour),
	}
}
