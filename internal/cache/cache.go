// Package cache holds the client's last known copy of the group collection.
//
// The cache is an explicit service object handed to the editor, not a
// global. All local state flows through one pattern: optimistic replace for
// immediate rendering, then invalidate-and-refetch once the mutation
// settles, so an optimistic snapshot is always a temporary projection and
// the server stays the single source of truth.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/schedulist/schedulist/internal/metrics"
	"github.com/schedulist/schedulist/internal/models"
)

// FetchFunc loads the authoritative collection from the server.
type FetchFunc func(ctx context.Context) ([]models.Group, error)

// Collection caches one list-of-groups result.
type Collection struct {
	fetch FetchFunc

	mu     sync.Mutex
	groups []models.Group
	loaded bool
	closed bool
	subs   []func()
}

// NewCollection creates an empty cache backed by fetch. Call
// InvalidateAndRefetch once to load the initial snapshot.
func NewCollection(fetch FetchFunc) *Collection {
	return &Collection{fetch: fetch}
}

// Get returns the current snapshot and whether one has been loaded. The
// returned slice must be treated as immutable; mutations go through
// SetOptimistic.
func (c *Collection) Get() ([]models.Group, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groups, c.loaded
}

// SetOptimistic replaces the snapshot ahead of server confirmation. It never
// persists anything; the next refetch overwrites it with server truth.
func (c *Collection) SetOptimistic(groups []models.Group) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.groups = groups
	c.loaded = true
	subs := append([]func(){}, c.subs...)
	c.mu.Unlock()

	metrics.CacheOptimisticWrites.Inc()
	for _, fn := range subs {
		fn()
	}
}

// InvalidateAndRefetch discards the optimistic snapshot by loading server
// truth. On fetch failure the previous snapshot stays in place and the error
// is returned. Concurrent calls are not serialized: whichever settles last
// determines the final snapshot, matching the reconciliation model.
func (c *Collection) InvalidateAndRefetch(ctx context.Context) error {
	metrics.CacheRefetches.Inc()

	groups, err := c.fetch(ctx)
	if err != nil {
		metrics.CacheRefetchErrors.Inc()
		slog.Debug("collection refetch failed", "error", err)
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.groups = groups
	c.loaded = true
	subs := append([]func(){}, c.subs...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// Subscribe registers fn to run after every snapshot change. Subscribers
// must call Get themselves; they receive no data to avoid aliasing.
func (c *Collection) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.subs = append(c.subs, fn)
}

// Close detaches the cache from its consumers. Late settles of in-flight
// refetches become no-ops; there is no view left to update.
func (c *Collection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.subs = nil
}
