package server

import (
	handler "vintage-vault/services/market/handler"

	"github.com/gin-gonic/gin"
)

// RouterOptions toggles optional parts of the HTTP surface
type RouterOptions struct {
	// DemoSignIn mounts POST /session, which issues a token for any known
	// profile without checking credentials.
	DemoSignIn bool
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(h *handler.MarketHandler, verifier TokenVerifier, opts RouterOptions) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // request ids for log correlation
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(AuthMiddleware(verifier))

	router.GET("/healthz", h.HealthHandler)
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/categories/:category/items", h.CategoryItemsHandler)

	items := router.Group("/items")
	{
		items.GET("/:item_id", h.GetItemHandler)
		items.GET("/:item_id/bids", h.GetBidsByItemHandler)
		items.GET("/:item_id/live", h.LiveHandler)
	}

	router.POST("/bids", RequireSession, h.RecordBidHandler)
	router.POST("/listings", RequireSession, h.SubmitListingHandler)
	router.POST("/auctions", RequireAdmin, h.CreateAuctionHandler)

	me := router.Group("/me", RequireSession)
	{
		me.GET("/bids", h.MyBidsHandler)
		me.GET("/won", h.WonItemsHandler)
		me.GET("/orders", h.OrdersHandler)

		me.GET("/cart", h.CartHandler)
		me.POST("/cart", h.AddToCartHandler)
		me.DELETE("/cart/:entry_id", h.RemoveFromCartHandler)

		me.GET("/addresses", h.ListAddressesHandler)
		me.POST("/addresses", h.CreateAddressHandler)
		me.PUT("/addresses/:address_id", h.UpdateAddressHandler)
		me.DELETE("/addresses/:address_id", h.DeleteAddressHandler)
		me.POST("/addresses/:address_id/default", h.SetDefaultAddressHandler)
	}

	orders := router.Group("/orders", RequireSession)
	{
		orders.POST("/checkout", h.CheckoutHandler)
		orders.POST("/buy-now", h.BuyNowHandler)
	}

	router.DELETE("/session", RequireSession, h.SignOutHandler)
	if opts.DemoSignIn {
		router.POST("/session", h.SignInHandler)
	}

	return router
}
