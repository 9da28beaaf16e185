package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"vintage-vault/internal/backend"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"

	"github.com/jackc/pgx/v5"
)

const (
	statusExpr = `auction_status_at(i, now())`
	leaderExpr = `(SELECT b.user_id FROM bids b WHERE b.item_id = i.id ORDER BY b.amount DESC, b.created_at ASC LIMIT 1)`
	winnerExpr = `COALESCE(i.winner_user_id, CASE WHEN i.is_auction AND ` + statusExpr + ` = 'ended' THEN ` + leaderExpr + ` END, '')`
)

var itemColumns = strings.Join([]string{
	"i.id", "i.name", "i.description", "COALESCE(i.image_url, '')", "i.category",
	"COALESCE(i.celebrity_name, '')", "COALESCE(i.certificate_id, '')", "COALESCE(i.seller_id, '')",
	"i.price::float8", "i.current_bid::float8", "i.min_bid_increment::float8", "i.start_time", "i.end_time",
	"COALESCE(" + statusExpr + ", '')", "i.is_auction", "i.verified", winnerExpr,
	"(SELECT count(*) FROM bids b WHERE b.item_id = i.id)", "i.created_at", "i.updated_at",
}, ", ")

func scanItem(row pgx.Row) (models.Item, error) {
	var (
		it               models.Item
		category, status string
	)
	err := row.Scan(
		&it.ItemID, &it.Name, &it.Description, &it.ImageURL, &category,
		&it.CelebrityName, &it.CertificateID, &it.SellerID,
		&it.Price, &it.CurrentBid, &it.MinBidIncrement, &it.StartTime, &it.EndTime,
		&status, &it.IsAuction, &it.Verified, &it.WinnerUserID,
		&it.BidCount, &it.CreatedAt, &it.UpdatedAt,
	)
	it.Category = models.Category(category)
	it.AuctionStatus = models.AuctionStatus(status)
	return it, err
}

// GetItem returns an item with its derived auction state
func (s *Store) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	item, err := scanItem(s.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items i WHERE i.id = $1`, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Item{}, fmt.Errorf("get item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return item, nil
}

// itemQuery renders filter as a SELECT over items
func itemQuery(f backend.ItemFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		where = append(where, "i.category = "+arg(string(f.Category)))
	}
	if f.IsAuction != nil {
		where = append(where, "i.is_auction = "+arg(*f.IsAuction))
	}
	if f.Verified != nil {
		where = append(where, "i.verified = "+arg(*f.Verified))
	}
	if f.WinnerUserID != "" {
		where = append(where, winnerExpr+" = "+arg(f.WinnerUserID))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		where = append(where, statusExpr+" = ANY("+arg(statuses)+")")
	}

	var q strings.Builder
	q.WriteString("SELECT " + itemColumns + " FROM items i")
	if len(where) > 0 {
		q.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	switch f.OrderBy {
	case backend.OrderByStartAsc:
		q.WriteString(" ORDER BY i.start_time ASC NULLS LAST")
	case backend.OrderByPriceAsc:
		q.WriteString(" ORDER BY i.price ASC")
	case backend.OrderByPriceDesc:
		q.WriteString(" ORDER BY i.price DESC")
	default:
		q.WriteString(" ORDER BY i.created_at DESC")
	}
	if f.Limit > 0 {
		q.WriteString(" LIMIT " + arg(f.Limit))
	}
	return q.String(), args
}

// ListItems returns the items matching filter
func (s *Store) ListItems(ctx context.Context, filter backend.ItemFilter) ([]models.Item, error) {
	q, args := itemQuery(filter)
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem inserts a new item
func (s *Store) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO items (name, description, image_url, category, celebrity_name, certificate_id, seller_id,
			price, current_bid, min_bid_increment, start_time, end_time, auction_status, is_auction, verified)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			$8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15)
		RETURNING id`,
		item.Name, item.Description, item.ImageURL, string(item.Category), item.CelebrityName, item.CertificateID, item.SellerID,
		item.Price, item.CurrentBid, item.MinBidIncrement, item.StartTime, item.EndTime, string(item.AuctionStatus),
		item.IsAuction, item.Verified,
	).Scan(&id)
	if err != nil {
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}
	return s.GetItem(ctx, id)
}

// PlaceBid calls the place_bid procedure. Its structured failures come
// back as a result, never as an error.
func (s *Store) PlaceBid(ctx context.Context, itemID, bidderID string, amount float64) (models.PlaceBidResult, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.PlaceBidResult{Error: "Invalid bid amount"}, nil
	}
	var res models.PlaceBidResult
	if err := s.pool.QueryRow(ctx, `SELECT place_bid($1, $2, $3)`, itemID, bidderID, amount).Scan(&res); err != nil {
		return models.PlaceBidResult{}, fmt.Errorf("place bid on item %s: %w", itemID, err)
	}
	return res, nil
}

const bidColumns = `b.id, b.item_id, b.user_id, b.bidder_name, b.amount::float8, b.created_at`

func scanBid(row pgx.Row, extra ...any) (models.Bid, error) {
	var b models.Bid
	dest := append([]any{&b.BidID, &b.ItemID, &b.UserID, &b.BidderName, &b.Amount, &b.CreatedAt}, extra...)
	return b, row.Scan(dest...)
}

// ListItemBids returns an item's bids, highest first; ties go to the earlier bid
func (s *Store) ListItemBids(ctx context.Context, itemID string, limit int) ([]models.Bid, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, itemID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("list bids of item %s: %w", itemID, err)
	}
	if !exists {
		return nil, fmt.Errorf("list bids of item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}

	q := `SELECT ` + bidColumns + ` FROM bids b WHERE b.item_id = $1 ORDER BY b.amount DESC, b.created_at ASC`
	args := []any{itemID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list bids of item %s: %w", itemID, err)
	}
	defer rows.Close()

	bids := []models.Bid{}
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("list bids of item %s: %w", itemID, err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// ListUserBids returns a user's bids, newest first, with the item they target
func (s *Store) ListUserBids(ctx context.Context, userID string) ([]models.UserBid, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bidColumns+`, i.id, i.name, COALESCE(i.image_url, ''), COALESCE(`+statusExpr+`, ''),
			i.end_time, i.current_bid::float8
		FROM bids b JOIN items i ON i.id = b.item_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bids of user %s: %w", userID, err)
	}
	defer rows.Close()

	out := []models.UserBid{}
	for rows.Next() {
		var (
			sum    models.ItemSummary
			status string
			end    *time.Time
		)
		b, err := scanBid(rows, &sum.ItemID, &sum.Name, &sum.ImageURL, &status, &end, &sum.CurrentBid)
		if err != nil {
			return nil, fmt.Errorf("list bids of user %s: %w", userID, err)
		}
		sum.AuctionStatus = models.AuctionStatus(status)
		sum.EndTime = end
		out = append(out, models.UserBid{Bid: b, Item: sum})
	}
	return out, rows.Err()
}

// GetProfile returns a user's profile
func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := s.pool.QueryRow(ctx, `SELECT id, email, full_name FROM profiles WHERE id = $1`, userID).
		Scan(&p.UserID, &p.Email, &p.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("get profile %s: %w", userID, marketerrors.ErrProfileNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return p, nil
}

// GetRole returns admin when the user holds that role, user otherwise
func (s *Store) GetRole(ctx context.Context, userID string) (models.Role, error) {
	var admin bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = 'admin')`, userID).
		Scan(&admin)
	if err != nil {
		return "", fmt.Errorf("get role of %s: %w", userID, err)
	}
	if admin {
		return models.RoleAdmin, nil
	}
	return models.RoleUser, nil
}
