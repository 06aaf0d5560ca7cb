package pricecache

import (
	"sync"
	"time"

	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

type key struct {
	date quarters.Date
	area types.Area
}

type entry struct {
	rows      []types.PriceRow
	expiresAt time.Time
}

// Cache is a bounded in-memory memoization of fetched days, keyed by
// (date, area) with a fixed TTL. It only ever holds a handful of entries
// (today/tomorrow times four areas) so expired entries are dropped lazily
// and on Sweep.
type Cache struct {
	mu    sync.RWMutex
	store map[key]entry
	ttl   time.Duration
	now   func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		store: make(map[key]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *Cache) Get(date quarters.Date, area types.Area) ([]types.PriceRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key{date, area}]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.rows, true
}

func (c *Cache) Set(date quarters.Date, area types.Area, rows []types.PriceRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key{date, area}] = entry{
		rows:      rows,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Clear empties the cache, forcing fresh fetches. Exposed to the UI as the
// manual cache clear control.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[key]entry)
}

// Sweep removes expired entries and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
			dropped++
		}
	}
	return dropped
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
