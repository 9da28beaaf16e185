package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"vintage-vault/internal/backend/memory"
	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/session"

	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	user  = &session.Session{UserID: "user1", Role: models.RoleUser}
	admin = &session.Session{UserID: "admin1", Role: models.RoleAdmin}
)

func validListing() ListingInput {
	return ListingInput{
		Name:        "Art deco brooch",
		Description: "A 1920s brooch with the original box.",
		Price:       4500,
		Category:    "jewelry",
	}
}

func validAuction() AuctionInput {
	return AuctionInput{
		Name:      "Signed guitar",
		Category:  "music",
		Price:     20000,
		StartTime: epoch.Add(time.Hour),
		EndTime:   epoch.Add(3 * time.Hour),
	}
}

func TestService_SubmitListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name          string
		sess          *session.Session
		mutate        func(in *ListingInput)
		expectedError error
	}{
		{name: "valid", sess: user, mutate: func(*ListingInput) {}},
		{name: "anonymous", sess: nil, mutate: func(*ListingInput) {}, expectedError: marketerrors.ErrUnauthenticated},
		{name: "name_too_short_after_trim", sess: user, mutate: func(in *ListingInput) { in.Name = "  ab  " }, expectedError: marketerrors.ErrInvalidInput},
		{name: "description_too_short", sess: user, mutate: func(in *ListingInput) { in.Description = "short" }, expectedError: marketerrors.ErrInvalidInput},
		{name: "price_below_one", sess: user, mutate: func(in *ListingInput) { in.Price = 0.5 }, expectedError: marketerrors.ErrInvalidInput},
		{name: "price_above_limit", sess: user, mutate: func(in *ListingInput) { in.Price = 1000001 }, expectedError: marketerrors.ErrInvalidInput},
		{name: "category_not_listable", sess: user, mutate: func(in *ListingInput) { in.Category = "cameras" }, expectedError: marketerrors.ErrInvalidInput},
		{name: "celebrity_name_too_long", sess: user, mutate: func(in *ListingInput) { in.CelebrityName = strings.Repeat("x", 101) }, expectedError: marketerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(memory.NewStore(nil), nil, 0)
			in := validListing()
			tc.mutate(&in)

			item, err := svc.SubmitListing(ctx, tc.sess, in)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.False(t, item.Verified, "listings wait for review")
			require.Equal(t, "user1", item.SellerID)
			require.NotEmpty(t, item.ItemID)
		})
	}
}

func TestService_CreateAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name          string
		sess          *session.Session
		mutate        func(in *AuctionInput)
		expectedError error
		wantIncrement float64
	}{
		{name: "default_increment", sess: admin, mutate: func(*AuctionInput) {}, wantIncrement: 75},
		{name: "explicit_increment", sess: admin, mutate: func(in *AuctionInput) { in.MinBidIncrement = 500 }, wantIncrement: 500},
		{name: "plain_user", sess: user, mutate: func(*AuctionInput) {}, expectedError: marketerrors.ErrForbidden},
		{name: "anonymous", sess: nil, mutate: func(*AuctionInput) {}, expectedError: marketerrors.ErrUnauthenticated},
		{name: "end_before_start", sess: admin, mutate: func(in *AuctionInput) { in.EndTime = in.StartTime.Add(-time.Minute) }, expectedError: marketerrors.ErrInvalidInput},
		{name: "unknown_category", sess: admin, mutate: func(in *AuctionInput) { in.Category = "spaceships" }, expectedError: marketerrors.ErrInvalidInput},
		{name: "zero_price", sess: admin, mutate: func(in *AuctionInput) { in.Price = 0 }, expectedError: marketerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(memory.NewStore(testingclock.NewFakeClock(epoch)), nil, 75)
			in := validAuction()
			tc.mutate(&in)

			item, err := svc.CreateAuction(ctx, tc.sess, in)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.True(t, item.IsAuction)
			require.True(t, item.Verified)
			require.Equal(t, models.AuctionUpcoming, item.AuctionStatus)
			require.Equal(t, 20000.0, *item.CurrentBid)
			require.Equal(t, tc.wantIncrement, item.MinBidIncrement)
		})
	}
}

func TestService_ListAuctionsRefreshesAfterCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := testingclock.NewFakeClock(epoch)
	store := memory.NewStore(clk)
	svc := NewService(store, querycache.New(clk), 0)

	auctions, err := svc.ListAuctions(ctx)
	require.NoError(t, err)
	require.Empty(t, auctions)

	later := validAuction()
	later.Name = "Later"
	later.StartTime = epoch.Add(2 * time.Hour)
	later.EndTime = epoch.Add(5 * time.Hour)
	_, err = svc.CreateAuction(ctx, admin, later)
	require.NoError(t, err)
	_, err = svc.CreateAuction(ctx, admin, validAuction())
	require.NoError(t, err)

	auctions, err = svc.ListAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, auctions, 2)
	require.Equal(t, "Signed guitar", auctions[0].Name, "soonest start first")

	clk.Step(4 * time.Hour)
	_, err = svc.SubmitListing(ctx, user, validListing())
	require.NoError(t, err)
	auctions, err = svc.ListAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, auctions, 1, "ended auctions drop out")
}

func TestService_ListByCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := testingclock.NewFakeClock(epoch)
	store := memory.NewStore(clk)
	svc := NewService(store, nil, 0)

	for _, it := range []models.Item{
		{ItemID: "cheap", Category: models.CategoryArt, Price: 10, Verified: true, CreatedAt: epoch},
		{ItemID: "pricey", Category: models.CategoryArt, Price: 900, Verified: true, CreatedAt: epoch.Add(-time.Hour)},
		{ItemID: "unverified", Category: models.CategoryArt, Price: 50, CreatedAt: epoch.Add(time.Hour)},
		{ItemID: "other", Category: models.CategoryBooks, Price: 5, Verified: true, CreatedAt: epoch},
	} {
		store.AddItem(it)
	}

	tests := []struct {
		name          string
		category      models.Category
		opts          BrowseOptions
		want          []string
		expectedError error
	}{
		{name: "newest_first", category: models.CategoryArt, want: []string{"unverified", "cheap", "pricey"}},
		{name: "verified_by_price", category: models.CategoryArt, opts: BrowseOptions{VerifiedOnly: true, Sort: SortPriceDesc}, want: []string{"pricey", "cheap"}},
		{name: "price_asc", category: models.CategoryArt, opts: BrowseOptions{Sort: SortPriceAsc}, want: []string{"cheap", "unverified", "pricey"}},
		{name: "unknown_category", category: "spaceships", expectedError: marketerrors.ErrInvalidInput},
		{name: "unknown_sort", category: models.CategoryArt, opts: BrowseOptions{Sort: "random"}, expectedError: marketerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			items, err := svc.ListByCategory(ctx, tc.category, tc.opts)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			var ids []string
			for _, it := range items {
				ids = append(ids, it.ItemID)
			}
			require.Equal(t, tc.want, ids)
		})
	}
}

func TestService_FollowInvalidatesListings(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clk := testingclock.NewFakeClock(epoch)
	store := memory.NewStore(clk)
	cache := querycache.New(clk)
	svc := NewService(store, cache, 0)

	start, end := epoch.Add(-time.Hour), epoch.Add(time.Hour)
	store.AddItem(models.Item{ItemID: "item1", IsAuction: true, Price: 100, MinBidIncrement: 10, StartTime: &start, EndTime: &end})
	_, err := svc.ListAuctions(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- svc.Follow(ctx, store) }()
	require.Eventually(t, func() bool { return store.Watchers() == 1 }, time.Second, 5*time.Millisecond)

	_, err = store.PlaceBid(ctx, "item1", "user1", 110)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return cache.Peek(querycache.NewKey(KindAuctions)).Stale }, time.Second, 5*time.Millisecond)

	auctions, err := svc.ListAuctions(ctx)
	require.NoError(t, err)
	require.Equal(t, 110.0, *auctions[0].CurrentBid)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
