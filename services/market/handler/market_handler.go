package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"vintage-vault/internal/addresses"
	"vintage-vault/internal/bidding"
	"vintage-vault/internal/catalog"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/orders"
	"vintage-vault/internal/session"
	"vintage-vault/services/market/helpers"
	"vintage-vault/utils"

	"github.com/gin-gonic/gin"
)

// Services are the domain services behind the HTTP surface
type Services struct {
	Bidding   BiddingServiceInterface
	Catalog   CatalogServiceInterface
	Orders    OrderServiceInterface
	Addresses AddressServiceInterface
	Sessions  SessionServiceInterface
	Profiles  ProfileLookup
}

type MarketHandler struct {
	svc  Services
	live LiveConfig
}

func NewMarketHandler(svc Services, live LiveConfig) *MarketHandler {
	return &MarketHandler{svc: svc, live: live}
}

func currentSession(c *gin.Context) *session.Session {
	return session.FromContext(c.Request.Context())
}

func userID(c *gin.Context) string {
	if s := currentSession(c); s != nil {
		return s.UserID
	}
	return ""
}

// HealthHandler handles GET /healthz
func (h *MarketHandler) HealthHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, gin.H{"ok": true}, "healthy")
}

// ListAuctionsHandler handles GET /auctions
func (h *MarketHandler) ListAuctionsHandler(c *gin.Context) {
	items, err := h.svc.Catalog.ListAuctions(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, items, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{"count": len(items)})
}

// GetItemHandler handles GET /items/:item_id
func (h *MarketHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	item, err := h.svc.Bidding.Item(c.Request.Context(), itemID)
	if err != nil {
		helpers.RespondError(c, "GetItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	resp := helpers.ItemResponse{Item: item}
	if item.IsAuction {
		resp.MinNextBid = bidding.MinNextBid(item)
	}
	utils.JSONResponse(c, http.StatusOK, resp, "item retrieved successfully")
}

// GetBidsByItemHandler handles GET /items/:item_id/bids
func (h *MarketHandler) GetBidsByItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	bids, err := h.svc.Bidding.Leaderboard(c.Request.Context(), itemID)
	if err != nil {
		helpers.RespondError(c, "GetBidsByItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	if bids == nil {
		bids = []models.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByItemHandler", "bids retrieved successfully", map[string]any{
		"item_id": itemID,
		"count":   len(bids),
	})
}

// CategoryItemsHandler handles GET /categories/:category/items
func (h *MarketHandler) CategoryItemsHandler(c *gin.Context) {
	category := models.Category(c.Param("category"))
	opts := catalog.BrowseOptions{Sort: c.Query("sort")}
	if v := c.Query("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			helpers.HandleBindError(c, "CategoryItemsHandler", fmt.Errorf("verified: %w", err))
			return
		}
		opts.VerifiedOnly = verified
	}

	items, err := h.svc.Catalog.ListByCategory(c.Request.Context(), category, opts)
	if err != nil {
		helpers.RespondError(c, "CategoryItemsHandler", err, map[string]any{"category": string(category)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, items, "items retrieved successfully")
}

// RecordBidHandler handles POST /bids
func (h *MarketHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	ctx := c.Request.Context()
	newHigh, err := h.svc.Bidding.PlaceBid(ctx, currentSession(c), req.ItemID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "RecordBidHandler", err, map[string]any{
			"item_id": req.ItemID,
			"user_id": userID(c),
			"amount":  req.Amount,
		})
		return
	}

	resp := helpers.PlaceBidResponse{ItemID: req.ItemID, Amount: req.Amount, NewHigh: newHigh}
	if item, err := h.svc.Bidding.Item(ctx, req.ItemID); err == nil {
		resp.MinNextBid = bidding.MinNextBid(item)
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "Bid placed successfully!")
	helpers.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"item_id":  req.ItemID,
		"user_id":  userID(c),
		"amount":   req.Amount,
		"new_high": newHigh,
	})
}

// SubmitListingHandler handles POST /listings
func (h *MarketHandler) SubmitListingHandler(c *gin.Context) {
	var req catalog.ListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitListingHandler", err)
		return
	}

	item, err := h.svc.Catalog.SubmitListing(c.Request.Context(), currentSession(c), req)
	if err != nil {
		helpers.RespondError(c, "SubmitListingHandler", err, map[string]any{"user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "listing submitted for verification")
	helpers.LogSuccess("SubmitListingHandler", "listing submitted", map[string]any{"item_id": item.ItemID, "user_id": userID(c)})
}

// CreateAuctionHandler handles POST /auctions
func (h *MarketHandler) CreateAuctionHandler(c *gin.Context) {
	var req catalog.AuctionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	item, err := h.svc.Catalog.CreateAuction(c.Request.Context(), currentSession(c), req)
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{"user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "auction created successfully")
}

// MyBidsHandler handles GET /me/bids
func (h *MarketHandler) MyBidsHandler(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		helpers.RespondError(c, "MyBidsHandler", marketerrors.ErrUnauthenticated, nil)
		return
	}
	bids, err := h.svc.Bidding.UserBids(c.Request.Context(), uid)
	if err != nil {
		helpers.RespondError(c, "MyBidsHandler", err, map[string]any{"user_id": uid})
		return
	}
	if bids == nil {
		bids = []models.UserBid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
}

// WonItemsHandler handles GET /me/won
func (h *MarketHandler) WonItemsHandler(c *gin.Context) {
	items, err := h.svc.Orders.WonItems(c.Request.Context(), currentSession(c))
	if err != nil {
		helpers.RespondError(c, "WonItemsHandler", err, map[string]any{"user_id": userID(c)})
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.JSONResponse(c, http.StatusOK, items, "won items retrieved successfully")
}

// OrdersHandler handles GET /me/orders
func (h *MarketHandler) OrdersHandler(c *gin.Context) {
	list, err := h.svc.Orders.ListOrders(c.Request.Context(), currentSession(c))
	if err != nil {
		helpers.RespondError(c, "OrdersHandler", err, map[string]any{"user_id": userID(c)})
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "orders retrieved successfully")
}

// CheckoutHandler handles POST /orders/checkout
func (h *MarketHandler) CheckoutHandler(c *gin.Context) {
	var req helpers.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CheckoutHandler", err)
		return
	}

	order, err := h.svc.Orders.Checkout(c.Request.Context(), currentSession(c), orders.CheckoutInput{
		ItemID:        req.ItemID,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		helpers.RespondError(c, "CheckoutHandler", err, map[string]any{"item_id": req.ItemID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "Order placed successfully!")
	helpers.LogSuccess("CheckoutHandler", "order placed", map[string]any{
		"order_id": order.OrderID,
		"item_id":  order.ItemID,
		"user_id":  order.UserID,
		"price":    order.Price,
	})
}

// BuyNowHandler handles POST /orders/buy-now
func (h *MarketHandler) BuyNowHandler(c *gin.Context) {
	var req helpers.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "BuyNowHandler", err)
		return
	}

	order, err := h.svc.Orders.BuyNow(c.Request.Context(), currentSession(c), req.ItemID)
	if err != nil {
		helpers.RespondError(c, "BuyNowHandler", err, map[string]any{"item_id": req.ItemID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "Order created! Proceed to payment.")
}

// CartHandler handles GET /me/cart
func (h *MarketHandler) CartHandler(c *gin.Context) {
	cart, err := h.svc.Orders.Cart(c.Request.Context(), currentSession(c))
	if err != nil {
		helpers.RespondError(c, "CartHandler", err, map[string]any{"user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, cart, "cart retrieved successfully")
}

// AddToCartHandler handles POST /me/cart
func (h *MarketHandler) AddToCartHandler(c *gin.Context) {
	var req helpers.CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddToCartHandler", err)
		return
	}

	entry, err := h.svc.Orders.AddToCart(c.Request.Context(), currentSession(c), req.ItemID, req.Quantity)
	if err != nil {
		helpers.RespondError(c, "AddToCartHandler", err, map[string]any{"item_id": req.ItemID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, entry, "Added to cart!")
}

// RemoveFromCartHandler handles DELETE /me/cart/:entry_id
func (h *MarketHandler) RemoveFromCartHandler(c *gin.Context) {
	entryID := c.Param("entry_id")
	if err := h.svc.Orders.RemoveFromCart(c.Request.Context(), currentSession(c), entryID); err != nil {
		helpers.RespondError(c, "RemoveFromCartHandler", err, map[string]any{"entry_id": entryID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"id": entryID}, "removed from cart")
}

// ListAddressesHandler handles GET /me/addresses
func (h *MarketHandler) ListAddressesHandler(c *gin.Context) {
	list, err := h.svc.Addresses.List(c.Request.Context(), userID(c))
	if err != nil {
		helpers.RespondError(c, "ListAddressesHandler", err, map[string]any{"user_id": userID(c)})
		return
	}
	if list == nil {
		list = []models.Address{}
	}

	utils.JSONResponse(c, http.StatusOK, list, "addresses retrieved successfully")
}

// CreateAddressHandler handles POST /me/addresses
func (h *MarketHandler) CreateAddressHandler(c *gin.Context) {
	var req addresses.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAddressHandler", err)
		return
	}

	a, err := h.svc.Addresses.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		helpers.RespondError(c, "CreateAddressHandler", err, map[string]any{"user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "address saved")
}

// UpdateAddressHandler handles PUT /me/addresses/:address_id
func (h *MarketHandler) UpdateAddressHandler(c *gin.Context) {
	var req models.AddressPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAddressHandler", err)
		return
	}

	addressID := c.Param("address_id")
	a, err := h.svc.Addresses.Update(c.Request.Context(), userID(c), addressID, req)
	if err != nil {
		helpers.RespondError(c, "UpdateAddressHandler", err, map[string]any{"address_id": addressID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "address updated")
}

// DeleteAddressHandler handles DELETE /me/addresses/:address_id
func (h *MarketHandler) DeleteAddressHandler(c *gin.Context) {
	addressID := c.Param("address_id")
	if err := h.svc.Addresses.Delete(c.Request.Context(), userID(c), addressID); err != nil {
		helpers.RespondError(c, "DeleteAddressHandler", err, map[string]any{"address_id": addressID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"id": addressID}, "address deleted")
}

// SetDefaultAddressHandler handles POST /me/addresses/:address_id/default
func (h *MarketHandler) SetDefaultAddressHandler(c *gin.Context) {
	addressID := c.Param("address_id")
	a, err := h.svc.Addresses.SetDefault(c.Request.Context(), userID(c), addressID)
	if err != nil {
		helpers.RespondError(c, "SetDefaultAddressHandler", err, map[string]any{"address_id": addressID, "user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, "default address updated")
}

// SignInHandler handles POST /session. It trusts the caller's user id and
// is only mounted by development deployments.
func (h *MarketHandler) SignInHandler(c *gin.Context) {
	var req helpers.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignInHandler", err)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.svc.Profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		helpers.RespondError(c, "SignInHandler", err, map[string]any{"user_id": req.UserID})
		return
	}
	token, err := h.svc.Sessions.Issue(profile.UserID, profile.Email)
	if err != nil {
		helpers.RespondError(c, "SignInHandler", err, map[string]any{"user_id": req.UserID})
		return
	}
	sess, err := h.svc.Sessions.Verify(ctx, token)
	if err != nil {
		helpers.RespondError(c, "SignInHandler", err, map[string]any{"user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.SessionResponse{
		Token:     token,
		UserID:    sess.UserID,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt.UTC().Format(time.RFC3339),
	}, "signed in")
	helpers.LogSuccess("SignInHandler", "session issued", map[string]any{"user_id": sess.UserID})
}

// SignOutHandler handles DELETE /session
func (h *MarketHandler) SignOutHandler(c *gin.Context) {
	sess := currentSession(c)
	if err := h.svc.Sessions.SignOut(sess); err != nil {
		helpers.RespondError(c, "SignOutHandler", err, map[string]any{"user_id": userID(c)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"redirect": utils.SignInPath}, "signed out")
}
