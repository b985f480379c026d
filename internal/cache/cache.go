package cache

import (
	"sync"
	"time"

	"menuboard/api/internal/domain"

	"github.com/benbjohnson/clock"
)

// Menu holds one immutable menu snapshot behind a revalidation window. The
// snapshot is replaced as a whole, never mutated; readers keep whatever
// pointer they got until the next Set. A TTL of zero disables caching, so
// Get never reports fresh.
type Menu struct {
	mu        sync.RWMutex
	clock     clock.Clock
	ttl       time.Duration
	data      *domain.MenuData
	fetchedAt time.Time
}

func NewMenu(ttl time.Duration, clk clock.Clock) *Menu {
	if clk == nil {
		clk = clock.New()
	}
	return &Menu{clock: clk, ttl: ttl}
}

// Get returns the cached snapshot and whether it is still fresh.
func (c *Menu) Get() (*domain.MenuData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil || c.ttl <= 0 {
		return c.data, false
	}
	return c.data, c.clock.Now().Sub(c.fetchedAt) < c.ttl
}

// Set replaces the snapshot and restarts the revalidation window.
func (c *Menu) Set(data *domain.MenuData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = data
	c.fetchedAt = c.clock.Now()
}

// Invalidate discards the snapshot so the next Get misses.
func (c *Menu) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = nil
	c.fetchedAt = time.Time{}
}

// Age returns how long ago the snapshot was set, or zero when empty.
func (c *Menu) Age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil {
		return 0
	}
	return c.clock.Now().Sub(c.fetchedAt)
}

// TTL returns the configured revalidation window.
func (c *Menu) TTL() time.Duration {
	return c.ttl
}
