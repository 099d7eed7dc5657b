package rewrite

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the rewriter cache.
type CacheConfig struct {
	// MaxSize is the maximum number of rewriters to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached rewriters. 0 means no expiration.
	TTL time.Duration
}

// RewriterCache provides LRU caching for compiled rewriters, keyed by
// their pattern/template pair. Rewriters are immutable, so handing the
// same instance to multiple callers is safe.
type RewriterCache struct {
	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key      string
	rewriter *Rewriter
	expiry   time.Time
	element  *list.Element
}

// NewRewriterCache creates a cache using the global configuration.
func NewRewriterCache() *RewriterCache {
	config := GetGlobalConfig()
	return NewRewriterCacheWithConfig(CacheConfig{
		MaxSize: config.CacheMaxSize,
		TTL:     config.CacheTTL,
	})
}

// NewRewriterCacheWithConfig creates a cache with the given configuration.
func NewRewriterCacheWithConfig(config CacheConfig) *RewriterCache {
	return &RewriterCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Get retrieves a rewriter from the cache.
func (rc *RewriterCache) Get(key string) (*Rewriter, bool) {
	rc.mu.RLock()
	entry, exists := rc.cache[key]
	rc.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if rc.config.TTL > 0 && time.Now().After(entry.expiry) {
		rc.Remove(key)
		return nil, false
	}

	rc.mu.Lock()
	rc.lru.MoveToFront(entry.element)
	rc.mu.Unlock()

	return entry.rewriter, true
}

// Set adds a rewriter to the cache, evicting the least recently used
// entry when full.
func (rc *RewriterCache) Set(key string, rewriter *Rewriter) {
	if rc.config.MaxSize == 0 {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if existing, exists := rc.cache[key]; exists {
		existing.rewriter = rewriter
		if rc.config.TTL > 0 {
			existing.expiry = time.Now().Add(rc.config.TTL)
		}
		rc.lru.MoveToFront(existing.element)
		return
	}

	if rc.lru.Len() >= rc.config.MaxSize {
		oldest := rc.lru.Back()
		if oldest != nil {
			oldEntry := oldest.Value.(*cacheEntry)
			delete(rc.cache, oldEntry.key)
			rc.lru.Remove(oldest)
		}
	}

	entry := &cacheEntry{
		key:      key,
		rewriter: rewriter,
	}
	if rc.config.TTL > 0 {
		entry.expiry = time.Now().Add(rc.config.TTL)
	}

	entry.element = rc.lru.PushFront(entry)
	rc.cache[key] = entry
}

// Remove removes a rewriter from the cache.
func (rc *RewriterCache) Remove(key string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, exists := rc.cache[key]
	if !exists {
		return
	}

	delete(rc.cache, key)
	rc.lru.Remove(entry.element)
}

// Clear removes all rewriters from the cache.
func (rc *RewriterCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache = make(map[string]*cacheEntry)
	rc.lru = list.New()
}

// Size returns the current number of cached rewriters.
func (rc *RewriterCache) Size() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.cache)
}

// defaultCache is a global cache instance for convenience.
var defaultCache = NewRewriterCache()
