// Package querycache keeps keyed snapshots of remote reads. Each key has
// at most one fetch in flight; invalidation marks entries stale so the next
// read refetches. Failed fetches are reported to the caller and never retried.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"k8s.io/utils/clock"
)

// Key identifies a cached query: a kind plus positional params
type Key struct {
	Kind   string
	Params []string
}

// NewKey builds a Key
func NewKey(kind string, params ...string) Key {
	return Key{Kind: kind, Params: params}
}

func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Kind
	}
	return k.Kind + "/" + strings.Join(k.Params, "/")
}

// HasPrefix reports whether prefix selects k. The zero Key selects every key.
func (k Key) HasPrefix(prefix Key) bool {
	if prefix.Kind == "" {
		return true
	}
	if prefix.Kind != k.Kind || len(prefix.Params) > len(k.Params) {
		return false
	}
	for i, p := range prefix.Params {
		if k.Params[i] != p {
			return false
		}
	}
	return true
}

// Status is the state of a cache entry
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time view of an entry
type Snapshot struct {
	Status    Status
	Value     any
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	key       Key
	status    Status
	value     any
	err       error
	stale     bool
	gen       uint64
	applied   uint64
	updatedAt time.Time
}

// Cache is safe for concurrent use
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	clock   clock.PassiveClock
}

// New creates an empty cache
func New(clk clock.PassiveClock) *Cache {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Cache{entries: make(map[string]*entry), clock: clk}
}

// Fetch returns the fresh cached value of key or runs fn to load it.
// Concurrent callers for the same key share one fn call, which runs
// detached from any single caller's cancellation; each caller stops
// waiting when its own ctx ends. A result that lands after the key was
// invalidated is kept but stays stale.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	id := key.String()

	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: key}
		c.entries[id] = e
	}
	if e.status == StatusSuccess && !e.stale {
		v, _ := e.value.(T)
		c.mu.Unlock()
		return v, nil
	}
	gen := e.gen
	e.status = StatusLoading
	c.mu.Unlock()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s#%d", id, gen), func() (any, error) {
		res, err := fn(shared)
		c.store(e, gen, res, err)
		return res, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(T)
		return v, nil
	}
}

// store records a fetch result. Results from a generation older than the
// one already applied are ignored.
func (c *Cache) store(e *entry, gen uint64, res any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < e.applied {
		return
	}
	e.applied = gen
	if err != nil {
		e.status = StatusError
		e.err = err
		return
	}
	e.status = StatusSuccess
	e.value = res
	e.err = nil
	e.stale = e.gen != gen
	e.updatedAt = c.clock.Now()
}

// Invalidate marks every entry selected by prefix stale and returns how
// many were touched. Fetches already in flight for them will not clear
// the stale mark.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			e.gen++
			n++
		}
	}
	return n
}

// Peek returns the current snapshot of key without fetching
func (c *Cache) Peek(key Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Snapshot{Status: StatusIdle}
	}
	return Snapshot{Status: e.status, Value: e.value, Err: e.err, Stale: e.stale, UpdatedAt: e.updatedAt}
}

// Mutate runs fn and, only when it succeeds, invalidates the given keys
func Mutate[T any](ctx context.Context, c *Cache, fn func(context.Context) (T, error), invalidates ...Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, k := range invalidates {
		c.Invalidate(k)
	}
	return v, nil
}
