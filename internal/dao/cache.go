package dao

import (
	"sync"
	"time"

	"github.com/vdash/vdash/internal/model1"
)

// DefaultCacheTTL bounds how long a loaded list is served without
// hitting the store.
const DefaultCacheTTL = 5 * time.Second

// CacheStats counts lookups since the cache was created.
type CacheStats struct {
	Hits, Misses, Entries int
}

type listEntry struct {
	records model1.Records
	expires time.Time
}

// ListCache holds record lists per resource until they expire or a write
// on the resource drops them.
type ListCache struct {
	lists  map[string]listEntry
	ttl    time.Duration
	now    func() time.Time
	hits   int
	misses int
	mx     sync.Mutex
}

// NewListCache returns an empty cache.
func NewListCache(ttl time.Duration) *ListCache {
	return &ListCache{
		lists: make(map[string]listEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the list cached under key, if still fresh. Stale lists are
// dropped on the way.
func (c *ListCache) Get(key string) (model1.Records, bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	e, ok := c.lists[key]
	if ok && c.now().After(e.expires) {
		delete(c.lists, key)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++

	return e.records, true
}

// Set caches rr under key.
func (c *ListCache) Set(key string, rr model1.Records) {
	if c.ttl <= 0 {
		return
	}
	c.mx.Lock()
	defer c.mx.Unlock()

	c.lists[key] = listEntry{records: rr, expires: c.now().Add(c.ttl)}
}

// Invalidate drops the list cached under key.
func (c *ListCache) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.lists, key)
}

// Purge drops every list.
func (c *ListCache) Purge() {
	c.mx.Lock()
	defer c.mx.Unlock()

	clear(c.lists)
}

// Stats returns the lookup counters.
func (c *ListCache) Stats() CacheStats {
	c.mx.Lock()
	defer c.mx.Unlock()

	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.lists)}
}
