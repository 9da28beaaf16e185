package helpers

import (
	"vintage-vault/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	ItemID string  `json:"item_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type PlaceBidResponse struct {
	ItemID     string  `json:"item_id"`
	Amount     float64 `json:"amount"`
	NewHigh    float64 `json:"new_high"`
	MinNextBid float64 `json:"min_next_bid"`
}

type ItemResponse struct {
	models.Item
	MinNextBid float64 `json:"min_next_bid,omitempty"`
}

type CheckoutRequest struct {
	ItemID        string `json:"item_id" binding:"required"`
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method" binding:"max=50"`
}

type BuyNowRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type CartRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0,lte=100"`
}

type SignInRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type SessionResponse struct {
	Token     string      `json:"token"`
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	ExpiresAt string      `json:"expires_at"`
}
