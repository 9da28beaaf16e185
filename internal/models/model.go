package models

import "time"

// AuctionStatus is the lifecycle phase of an auction item
type AuctionStatus string

const (
	AuctionUpcoming AuctionStatus = "upcoming"
	AuctionLive     AuctionStatus = "live"
	AuctionEnded    AuctionStatus = "ended"
)

// Category is the catalog section an item is listed under
type Category string

const (
	CategoryAntiques  Category = "antiques"
	CategoryCelebrity Category = "celebrity"
	CategoryFashion   Category = "fashion"
	CategoryJewelry   Category = "jewelry"
	CategoryArt       Category = "art"
	CategoryMakeup    Category = "makeup"
	CategoryGarments  Category = "garments"
	CategoryCameras   Category = "cameras"
	CategoryWatches   Category = "watches"
	CategoryHomeDecor Category = "home_decor"
	CategoryBooks     Category = "books"
	CategoryMusic     Category = "music"
)

var categories = map[Category]struct{}{
	CategoryAntiques: {}, CategoryCelebrity: {}, CategoryFashion: {}, CategoryJewelry: {},
	CategoryArt: {}, CategoryMakeup: {}, CategoryGarments: {}, CategoryCameras: {},
	CategoryWatches: {}, CategoryHomeDecor: {}, CategoryBooks: {}, CategoryMusic: {},
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// OrderStatus covers both payment and fulfilment states of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Role gates privileged actions such as auction creation
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile is the public identity of a user
type Profile struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Item represents a catalog item, optionally sold by auction
type Item struct {
	ItemID          string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	ImageURL        string        `json:"image_url,omitempty"`
	Category        Category      `json:"category"`
	CelebrityName   string        `json:"celebrity_name,omitempty"`
	CertificateID   string        `json:"certificate_id,omitempty"`
	SellerID        string        `json:"seller_id"`
	Price           float64       `json:"price"`
	CurrentBid      *float64      `json:"current_bid"`
	MinBidIncrement float64       `json:"min_bid_increment"`
	StartTime       *time.Time    `json:"start_time"`
	EndTime         *time.Time    `json:"end_time"`
	AuctionStatus   AuctionStatus `json:"auction_status,omitempty"`
	IsAuction       bool          `json:"is_auction"`
	Verified        bool          `json:"verified"`
	WinnerUserID    string        `json:"winner_user_id,omitempty"`
	BidCount        int           `json:"bid_count"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BidBase returns the amount the next bid is measured against: the
// current bid when one exists, otherwise the list price.
func (i Item) BidBase() float64 {
	if i.CurrentBid != nil {
		return *i.CurrentBid
	}
	return i.Price
}

// StatusAt derives the auction phase from the auction window. Items
// without a complete window keep their stored status.
func (i Item) StatusAt(now time.Time) AuctionStatus {
	if i.StartTime == nil || i.EndTime == nil {
		return i.AuctionStatus
	}
	switch {
	case !now.Before(*i.EndTime):
		return AuctionEnded
	case now.Before(*i.StartTime):
		return AuctionUpcoming
	default:
		return AuctionLive
	}
}

// Bid represents a user's bid on an item
type Bid struct {
	BidID      string    `json:"id"`
	ItemID     string    `json:"item_id"`
	UserID     string    `json:"user_id"`
	BidderName string    `json:"bidder_name"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemSummary is the slice of an item shown next to a user's bid
type ItemSummary struct {
	ItemID        string        `json:"id"`
	Name          string        `json:"name"`
	ImageURL      string        `json:"image_url,omitempty"`
	AuctionStatus AuctionStatus `json:"auction_status,omitempty"`
	EndTime       *time.Time    `json:"end_time"`
	CurrentBid    *float64      `json:"current_bid"`
}

// UserBid is an entry of a user's bid history
type UserBid struct {
	Bid
	Item ItemSummary `json:"item"`
}

// PlaceBidResult is the structured reply of the place_bid procedure
type PlaceBidResult struct {
	OK      bool     `json:"ok"`
	NewHigh *float64 `json:"new_high,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Address is a shipping address owned by a user
type Address struct {
	AddressID  string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddressPatch carries the fields of an address update; nil fields are left unchanged
type AddressPatch struct {
	Name       *string `json:"name"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	Phone      *string `json:"phone"`
}

// Apply copies the set fields of p onto a
func (p AddressPatch) Apply(a *Address) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.Name, p.Name)
	set(&a.Line1, p.Line1)
	set(&a.Line2, p.Line2)
	set(&a.City, p.City)
	set(&a.State, p.State)
	set(&a.PostalCode, p.PostalCode)
	set(&a.Country, p.Country)
	set(&a.Phone, p.Phone)
}

// Order is a purchase of a single item
type Order struct {
	OrderID            string      `json:"id"`
	ItemID             string      `json:"item_id"`
	UserID             string      `json:"user_id"`
	AddressID          string      `json:"address_id,omitempty"`
	Price              float64     `json:"price"`
	TotalAmount        float64     `json:"total_amount"`
	PaymentMethod      string      `json:"payment_method,omitempty"`
	PaymentStatus      OrderStatus `json:"payment_status"`
	OrderStatus        OrderStatus `json:"order_status"`
	ShippingName       string      `json:"shipping_name,omitempty"`
	ShippingAddress    string      `json:"shipping_address,omitempty"`
	ShippingCity       string      `json:"shipping_city,omitempty"`
	ShippingPostalCode string      `json:"shipping_postal_code,omitempty"`
	ShippingPhone      string      `json:"shipping_phone,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// CartEntry is an item placed in a user's cart
type CartEntry struct {
	EntryID   string    `json:"id"`
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
