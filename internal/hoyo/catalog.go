package hoyo

import (
	"context"
	"sync"

	"hoyosweep/internal/game"
)

// CatalogCache holds the per-game monthly reward catalog for one run. The
// catalog is identical for every account of a game, so it is fetched at most
// once and reused across the fan-out. Write-once per key: the mutex is held
// across the fetch, which also serializes a racing first use.
type CatalogCache struct {
	mu     sync.Mutex
	byGame map[game.Game][]Reward
}

// NewCatalogCache returns an empty cache.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{byGame: make(map[game.Game][]Reward)}
}

// Get returns the cached catalog for g, fetching it via fetch on first use.
// A failed fetch is not cached; the next caller retries.
func (c *CatalogCache) Get(ctx context.Context, g game.Game, fetch func(context.Context) ([]Reward, error)) ([]Reward, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rewards, ok := c.byGame[g]; ok {
		return rewards, nil
	}
	rewards, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.byGame[g] = rewards
	return rewards, nil
}
