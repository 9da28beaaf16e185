// Package postgres is the production backend: the platform tables live in
// PostgreSQL, bids go through the place_bid stored procedure, and row
// changes arrive over LISTEN/NOTIFY.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"vintage-vault/internal/backend"
	"vintage-vault/internal/backend/postgres/migrations"
	"vintage-vault/internal/realtime"
	"vintage-vault/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// changeChannel is the NOTIFY channel fed by the bids and items triggers
const changeChannel = "item_changes"

const (
	feedBuffer  = 64
	listenRetry = 2 * time.Second
)

var _ backend.Backend = (*Store)(nil)
var _ backend.DefaultSwapper = (*Store)(nil)

// DBTX is the query surface shared by the pool and a transaction
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements backend.Backend on a pgx pool
type Store struct {
	pool   *pgxpool.Pool
	hub    *realtime.Hub
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Open connects to dsn, applies pending migrations and starts listening
// for row changes
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	s := &Store{pool: pool, hub: realtime.NewHub(feedBuffer), cancel: cancel}
	s.wg.Add(1)
	go s.listen(listenCtx)
	return s, nil
}

// gooseUp is replaced in tests
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded goose migrations through pool
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUp(ctx, db, ".")
}

// Subscribe opens a change feed for itemID
func (s *Store) Subscribe(ctx context.Context, itemID string) (realtime.Subscription, error) {
	return s.hub.Subscribe(ctx, itemID)
}

// Close stops the change listener, closes every feed and the pool
func (s *Store) Close() error {
	s.cancel()
	s.wg.Wait()
	s.hub.Close()
	s.pool.Close()
	return nil
}

func (s *Store) listen(ctx context.Context) {
	defer s.wg.Done()
	for {
		err := s.listenOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		utils.Warn("postgres: change feed interrupted, reconnecting", map[string]any{"error": err.Error()})
		select {
		case <-ctx.Done():
			return
		case <-time.After(listenRetry):
		}
	}
}

func (s *Store) listenOnce(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
		return err
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		ev, err := decodeChange(n.Payload)
		if err != nil {
			utils.Warn("postgres: undecodable change notification", map[string]any{"error": err.Error()})
			continue
		}
		s.hub.Publish(ev)
	}
}

// decodeChange parses a trigger payload into a change event
func decodeChange(payload string) (realtime.ChangeEvent, error) {
	var ev realtime.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return realtime.ChangeEvent{}, err
	}
	switch ev.Kind {
	case realtime.BidInserted, realtime.ItemUpdated:
	default:
		return realtime.ChangeEvent{}, fmt.Errorf("unknown change kind %q", ev.Kind)
	}
	if ev.ItemID == "" {
		return realtime.ChangeEvent{}, errors.New("change without item_id")
	}
	return ev, nil
}

// isForeignKeyViolation reports whether err is a foreign key failure
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
