package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"vintage-vault/internal/addresses"
	"vintage-vault/internal/catalog"
	"vintage-vault/internal/models"
	"vintage-vault/services/market/helpers"

	"github.com/stretchr/testify/require"
)

var home = addresses.Input{
	Name:       "Home",
	Line1:      "12 MG Road",
	City:       "Pune",
	State:      "Maharashtra",
	PostalCode: "411001",
	Phone:      "9999999999",
}

// RecordBidHandler Tests
func TestRecordBidHandler(t *testing.T) {
	upcoming := liveAuction("soon", 500, 25, 3*time.Hour)
	later := epoch.Add(time.Hour)
	upcoming.StartTime = &later

	tests := []struct {
		name       string
		userID     string
		token      string
		request    any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Valid_Bid",
			userID:     "user1",
			request:    helpers.PlaceBidRequest{ItemID: "item1", Amount: 1100},
			wantStatus: http.StatusCreated,
			wantMsg:    "Bid placed successfully!",
		},
		{
			name:       "Below_Minimum",
			userID:     "user1",
			request:    helpers.PlaceBidRequest{ItemID: "item1", Amount: 1020},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid bid amount",
		},
		{
			name:       "Auction_Not_Live",
			userID:     "user1",
			request:    helpers.PlaceBidRequest{ItemID: "soon", Amount: 600},
			wantStatus: http.StatusConflict,
			wantMsg:    "Auction is not live",
		},
		{
			name:       "Unknown_Item",
			userID:     "user1",
			request:    helpers.PlaceBidRequest{ItemID: "ghost", Amount: 600},
			wantStatus: http.StatusNotFound,
			wantMsg:    "item not found",
		},
		{
			name:       "Anonymous",
			request:    helpers.PlaceBidRequest{ItemID: "item1", Amount: 1100},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "sign in required",
		},
		{
			name:       "Forged_Token",
			token:      "not-a-jwt",
			request:    helpers.PlaceBidRequest{ItemID: "item1", Amount: 1100},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "sign in required",
		},
		{
			name:       "Invalid_JSON",
			userID:     "user1",
			request:    "{item_id: 'missing quotes', amount: 100}",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := SetupTestApp(t, liveAuction("item1", 1000, 50, time.Hour), upcoming)
			token := tt.token
			if tt.userID != "" {
				token = app.Token(t, tt.userID)
			}

			resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/bids", token, tt.request)
			require.Equal(t, tt.wantStatus, w.Code)
			require.Equal(t, tt.wantMsg, resp["message"])

			if tt.wantStatus == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, 1100.0, data["new_high"])
				require.Equal(t, 1150.0, data["min_next_bid"])
			}
			if tt.wantStatus == http.StatusUnauthorized {
				require.Equal(t, "/auth", resp["redirect"])
			}
		})
	}
}

// GetBidsByItemHandler Tests
func TestGetBidsByItemHandler(t *testing.T) {
	app := SetupTestApp(t, liveAuction("item1", 1000, 50, time.Hour))

	for _, bid := range []struct {
		userID string
		amount float64
	}{{"user1", 1100}, {"user2", 1200}, {"user1", 1300}} {
		_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/bids", app.Token(t, bid.userID),
			helpers.PlaceBidRequest{ItemID: "item1", Amount: bid.amount})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/items/item1/bids", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bids := resp["data"].([]any)
	require.Len(t, bids, 3)
	top := bids[0].(map[string]any)
	require.Equal(t, "user1", top["user_id"])
	require.Equal(t, 1300.0, top["amount"])
	require.Equal(t, "Asha", top["bidder_name"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/items/item1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := resp["data"].(map[string]any)
	require.Equal(t, 1300.0, item["current_bid"])
	require.Equal(t, 1350.0, item["min_next_bid"])
	require.Equal(t, 3.0, item["bid_count"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/bids", app.Token(t, "user2"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)

	_, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/items/ghost/bids", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuctionWinCheckoutFlow(t *testing.T) {
	app := SetupTestApp(t, liveAuction("item1", 1000, 50, time.Minute))
	winner, loser := app.Token(t, "user1"), app.Token(t, "user2")

	_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/bids", loser, helpers.PlaceBidRequest{ItemID: "item1", Amount: 1050})
	require.Equal(t, http.StatusCreated, w.Code)
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/bids", winner, helpers.PlaceBidRequest{ItemID: "item1", Amount: 1250})
	require.Equal(t, http.StatusCreated, w.Code)

	// still live
	resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/orders/checkout", winner, helpers.CheckoutRequest{ItemID: "item1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	app.clock.Step(2 * time.Minute)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/won", winner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	won := resp["data"].([]any)
	require.Len(t, won, 1)
	require.Equal(t, "item1", won[0].(map[string]any)["id"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/orders/checkout", winner, helpers.CheckoutRequest{ItemID: "item1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Please select a delivery address", resp["message"])

	preferred := home
	preferred.IsDefault = true
	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/me/addresses", winner, preferred)
	require.Equal(t, http.StatusCreated, w.Code)
	address := resp["data"].(map[string]any)
	require.Equal(t, true, address["is_default"])
	require.Equal(t, "India", address["country"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/orders/checkout", winner, helpers.CheckoutRequest{ItemID: "item1", PaymentMethod: "upi"})
	require.Equal(t, http.StatusCreated, w.Code)
	order := resp["data"].(map[string]any)
	require.Equal(t, 1250.0, order["price"])
	require.Equal(t, address["id"], order["address_id"])
	require.Equal(t, "pending", order["order_status"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/orders/checkout", loser, helpers.CheckoutRequest{ItemID: "item1"})
	require.Equal(t, http.StatusForbidden, w.Code)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/orders", winner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)
}

func TestAddressBook(t *testing.T) {
	app := SetupTestApp(t)
	token := app.Token(t, "user1")

	resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/me/addresses", token, home)
	require.Equal(t, http.StatusCreated, w.Code)
	first := resp["data"].(map[string]any)["id"].(string)

	office := home
	office.Name = "Office"
	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/me/addresses", token, office)
	require.Equal(t, http.StatusCreated, w.Code)
	second := resp["data"].(map[string]any)
	require.Equal(t, false, second["is_default"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, fmt.Sprintf("/me/addresses/%s/default", second["id"]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/addresses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].([]any)
	require.Len(t, list, 2)
	require.Equal(t, "Office", list[0].(map[string]any)["name"], "default first")
	require.Equal(t, false, list[1].(map[string]any)["is_default"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodPut, "/me/addresses/"+first, token, map[string]any{"city": "Mumbai"})
	require.Equal(t, http.StatusOK, w.Code)

	// other users cannot see or touch it
	_, w = app.ExecuteRequestAndParse(t, http.MethodDelete, "/me/addresses/"+first, app.Token(t, "user2"), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, w = app.ExecuteRequestAndParse(t, http.MethodDelete, "/me/addresses/"+first, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCartAndBuyNow(t *testing.T) {
	app := SetupTestApp(t, fixedPrice("vase", 250), fixedPrice("lamp", 100), liveAuction("item1", 1000, 50, time.Hour))
	token := app.Token(t, "user1")

	_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/me/cart", token, helpers.CartRequest{ItemID: "vase", Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code)
	resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/me/cart", token, helpers.CartRequest{ItemID: "lamp"})
	require.Equal(t, http.StatusCreated, w.Code)
	lampEntry := resp["data"].(map[string]any)["id"].(string)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 600.0, resp["data"].(map[string]any)["total"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodDelete, "/me/cart/"+lampEntry, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp, _ = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/cart", token, nil)
	require.Equal(t, 500.0, resp["data"].(map[string]any)["total"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/orders/buy-now", token, helpers.BuyNowRequest{ItemID: "vase"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 250.0, resp["data"].(map[string]any)["price"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/orders/buy-now", token, helpers.BuyNowRequest{ItemID: "item1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogAdministration(t *testing.T) {
	app := SetupTestApp(t, liveAuction("item1", 1000, 50, time.Hour))

	start := epoch.Add(time.Hour)
	auction := catalog.AuctionInput{
		Name:      "Leica M3",
		Category:  string(models.CategoryCameras),
		Price:     2000,
		StartTime: start,
		EndTime:   start.Add(48 * time.Hour),
	}

	_, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/auctions", app.Token(t, "user1"), auction)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp, w := app.ExecuteRequestAndParse(t, http.MethodGet, "/auctions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/auctions", app.Token(t, "admin1"), auction)
	require.Equal(t, http.StatusCreated, w.Code)
	created := resp["data"].(map[string]any)
	require.Equal(t, 2000.0, created["current_bid"])
	require.Equal(t, 50.0, created["min_bid_increment"])
	require.Equal(t, "upcoming", created["auction_status"])

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/auctions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	listing := catalog.ListingInput{
		Name:        "Brass telescope",
		Description: "Victorian brass telescope, fully working",
		Price:       420,
		Category:    string(models.CategoryAntiques),
	}
	resp, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/listings", app.Token(t, "user2"), listing)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, false, resp["data"].(map[string]any)["verified"])

	listing.Description = "short"
	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/listings", app.Token(t, "user2"), listing)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDemoSessionLifecycle(t *testing.T) {
	app := SetupTestApp(t)

	resp, w := app.ExecuteRequestAndParse(t, http.MethodPost, "/session", "", helpers.SignInRequest{UserID: "admin1"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "admin", data["role"])
	token := data["token"].(string)

	_, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = app.ExecuteRequestAndParse(t, http.MethodDelete, "/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = app.ExecuteRequestAndParse(t, http.MethodGet, "/me/orders", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "/auth", resp["redirect"])

	_, w = app.ExecuteRequestAndParse(t, http.MethodPost, "/session", "", helpers.SignInRequest{UserID: "stranger"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
