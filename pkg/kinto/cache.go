package kinto

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fivetwenty-io/kinto-client/internal/constants"
)

// Static cache errors.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
)

// CacheEntry is one cached GET response.
type CacheEntry struct {
	// Data is the raw response body.
	Data []byte `json:"data"`
	// Headers are the response headers; list responses carry their
	// pagination cursor here, so they are cached alongside the body.
	Headers map[string][]string `json:"headers,omitempty"`
	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`
	// ETag is the collection timestamp the entry was fetched at.
	ETag string `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry.
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Cache stores GET responses keyed by request URL. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheOptions are common options applied to any backend.
type CacheOptions struct {
	// TTL is the default entry lifetime.
	TTL time.Duration
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL: constants.DefaultCacheTTL,
	}
}

// MemoryCache is an in-process Cache with a fixed capacity. When full,
// Set evicts the entry closest to expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry, rejecting expired ones.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, ErrCacheEntryExpired
	}

	return entry, nil
}

// Set stores an entry, evicting the soonest-expiring one when full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		var (
			victim   string
			earliest time.Time
		)

		for k, e := range c.entries {
			if victim == "" || e.ExpiresAt.Before(earliest) {
				victim = k
				earliest = e.ExpiresAt
			}
		}

		delete(c.entries, victim)
	}

	c.entries[key] = entry

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has checks for an unexpired entry.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && !entry.Expired()
}
