package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-pkgz/lcw/v2"
)

// Cached wraps a store Interface with a loading cache for board lookups and satisfies the Interface itself.
// Every thread and post request resolves its board, so boards are read far more often than written.
// Cache is populated on reads via loader function, invalidated on board deletes.
type Cached struct {
	Interface
	cache lcw.LoadingCache[Board]
}

// NewCached creates a new cached store wrapper.
// maxKeys sets the maximum number of entries in the cache.
func NewCached(store Interface, maxKeys int) (*Cached, error) {
	cache, err := lcw.NewLruCache(lcw.NewOpts[Board]().MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{Interface: store, cache: cache}, nil
}

// GetBoard retrieves the board, using cache with load-through. Misses are not cached.
func (c *Cached) GetBoard(ctx context.Context, id int64) (Board, error) {
	b, err := c.cache.Get(boardKey(id), func() (Board, error) {
		return c.Interface.GetBoard(ctx, id)
	})
	if err != nil {
		return Board{}, fmt.Errorf("cache get: %w", err)
	}
	return b, nil
}

// DeleteBoard removes the board and invalidates its cache entry.
func (c *Cached) DeleteBoard(ctx context.Context, id int64) ([]string, error) {
	key := boardKey(id)
	// invalidate regardless of error - board might have been cached
	c.cache.Invalidate(func(k string) bool { return k == key })
	images, err := c.Interface.DeleteBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store delete board: %w", err)
	}
	return images, nil
}

// Close closes the cache and underlying store.
func (c *Cached) Close() error {
	_ = c.cache.Close()
	if err := c.Interface.Close(); err != nil {
		return fmt.Errorf("store close: %w", err)
	}
	return nil
}

// Stats returns cache statistics.
func (c *Cached) Stats() lcw.CacheStat {
	return c.cache.Stat()
}

func boardKey(id int64) string {
	return "board:" + strconv.FormatInt(id, 10)
}
