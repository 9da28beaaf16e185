package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vintage-vault/internal/addresses"
	"vintage-vault/internal/backend"
	"vintage-vault/internal/backend/memory"
	"vintage-vault/internal/backend/postgres"
	"vintage-vault/internal/bidding"
	"vintage-vault/internal/catalog"
	"vintage-vault/internal/config"
	"vintage-vault/internal/models"
	"vintage-vault/internal/orders"
	"vintage-vault/internal/querycache"
	"vintage-vault/internal/realtime"
	"vintage-vault/internal/realtime/redisfeed"
	"vintage-vault/internal/server"
	"vintage-vault/internal/session"
	"vintage-vault/services/market/handler"
	"vintage-vault/utils"

	"github.com/redis/go-redis/v9"
	"k8s.io/utils/clock"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		utils.Fatal("Failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		utils.Warn("Unknown log level, keeping info", map[string]any{"level": cfg.LogLevel})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.RealClock{}

	store, err := openBackend(ctx, cfg, clk)
	if err != nil {
		utils.Fatal("Failed to open backend", map[string]any{"backend": cfg.Backend, "error": err.Error()})
	}
	defer store.Close()

	feed, closeFeed, err := openFeed(ctx, cfg, store)
	if err != nil {
		utils.Fatal("Failed to open realtime feed", map[string]any{"realtime": cfg.Realtime, "error": err.Error()})
	}
	defer closeFeed()

	cache := querycache.New(clk)
	sessions := session.NewManager([]byte(cfg.JWTSecret), cfg.SessionValidity, store, clk)
	biddingSvc := bidding.NewCoordinator(store, cache, cfg.LeaderboardLimit)
	catalogSvc := catalog.NewService(store, cache, cfg.DefaultBidIncrement)
	addressBook := addresses.NewService(store, cache)
	orderSvc := orders.NewService(store, addressBook, cache)

	go func() {
		if err := catalogSvc.Follow(ctx, feed); err != nil && !errors.Is(err, context.Canceled) {
			utils.Error("Catalog stopped following changes", map[string]any{"error": err.Error()})
		}
	}()

	marketHandler := handler.NewMarketHandler(handler.Services{
		Bidding:   biddingSvc,
		Catalog:   catalogSvc,
		Orders:    orderSvc,
		Addresses: addressBook,
		Sessions:  sessions,
		Profiles:  store,
	}, handler.LiveConfig{
		Feed:             feed,
		Sessions:         sessions.Broker(),
		Clock:            clk,
		WinRedirectDelay: cfg.WinRedirectDelay,
		CountdownPeriod:  cfg.CountdownPeriod,
	})

	router := server.SetupRouter(marketHandler, sessions, server.RouterOptions{
		DemoSignIn: cfg.Backend == config.BackendMemory,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// live streams end with the process context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		utils.Info("Starting auction server", map[string]any{
			"addr":     srv.Addr,
			"backend":  cfg.Backend,
			"realtime": cfg.Realtime,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("Graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// openBackend connects the configured platform backend
func openBackend(ctx context.Context, cfg *config.Config, clk clock.PassiveClock) (backend.Backend, error) {
	if cfg.Backend == config.BackendPostgres {
		return postgres.Open(ctx, cfg.DatabaseURL)
	}

	store := memory.NewStore(clk)
	if cfg.SeedDemoData {
		prepopulateItems(store, clk.Now())
	}
	return store, nil
}

// openFeed returns the change feed live rooms follow. In redis mode the
// backend's own feed is relayed to Redis when this instance is the relay.
func openFeed(ctx context.Context, cfg *config.Config, store backend.Backend) (realtime.Subscriber, func(), error) {
	if cfg.Realtime != config.RealtimeRedis {
		return store, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	feed := redisfeed.New(client)

	if cfg.RedisRelay {
		go func() {
			if err := redisfeed.Relay(ctx, store, feed); err != nil && !errors.Is(err, context.Canceled) {
				utils.Error("Redis relay stopped", map[string]any{"error": err.Error()})
			}
		}()
	}
	return feed, func() { _ = client.Close() }, nil
}

// prepopulateItems adds sample catalog data to the in-memory store
func prepopulateItems(store *memory.Store, now time.Time) {
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	store.AddProfile(models.Profile{UserID: "admin1", Email: "curator@vintage-vault.test", FullName: "Curator"})
	store.AddProfile(models.Profile{UserID: "user1", Email: "asha@vintage-vault.test", FullName: "Asha"})
	store.AddProfile(models.Profile{UserID: "user2", Email: "grace@vintage-vault.test", FullName: "Grace"})
	store.SetRole("admin1", models.RoleAdmin)

	items := []models.Item{
		{
			ItemID: "item1", Name: "Silver pocket watch", Description: "Hallmarked 1890s hunter case",
			Category: models.CategoryWatches, Price: 1000, MinBidIncrement: 50,
			StartTime: at(-time.Hour), EndTime: at(2 * time.Hour), IsAuction: true, Verified: true,
		},
		{
			ItemID: "item2", Name: "Signed concert poster", Description: "Hand-signed 1970s tour poster",
			Category: models.CategoryCelebrity, CelebrityName: "Kishore Kumar", CertificateID: "COA-1977-042",
			Price: 400, MinBidIncrement: 25,
			StartTime: at(time.Hour), EndTime: at(26 * time.Hour), IsAuction: true, Verified: true,
		},
		{
			ItemID: "item3", Name: "Brass gramophone", Description: "Working horn gramophone with crank",
			Category: models.CategoryAntiques, Price: 650, Verified: true,
		},
		{
			ItemID: "item4", Name: "Art deco brooch", Description: "Marcasite and onyx brooch",
			Category: models.CategoryJewelry, Price: 180, Verified: true,
		},
	}
	for _, item := range items {
		item.CreatedAt = now
		item.UpdatedAt = now
		store.AddItem(item)
	}
}
