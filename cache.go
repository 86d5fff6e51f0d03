package seoblog

import (
	"sync"
	"time"
)

// DefaultLedgerTTL is how long the preview server reuses a ledger listing.
const DefaultLedgerTTL = 5 * time.Second

// LedgerCache is an in-memory cache of ledger entries with a TTL, so feed
// requests do not each hit the database.
type LedgerCache struct {
	mu      sync.RWMutex
	entries []LedgerEntry
	fetched time.Time
	ttl     time.Duration
	store   *Store
	now     func() time.Time
}

// NewLedgerCache creates a LedgerCache backed by the given Store.
func NewLedgerCache(s *Store, ttl time.Duration) *LedgerCache {
	return &LedgerCache{store: s, ttl: ttl, now: time.Now}
}

func (c *LedgerCache) valid() bool {
	return c.entries != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *LedgerCache) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}

// Entries returns cached ledger entries, newest first, reloading when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *LedgerCache) Entries() ([]LedgerEntry, error) {
	c.mu.RLock()
	if c.valid() {
		entries := c.entries
		c.mu.RUnlock()
		return entries, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.entries, nil
	}
	entries, err := c.store.ListPosts()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []LedgerEntry{}
	}
	c.entries = entries
	c.fetched = c.now()
	return c.entries, nil
}
