package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process key-value store with expiration
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a store whose items expire after defaultTTL.
// Expired items are swept every cleanupInterval.
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Set stores a value. A zero expiration uses the store default.
func (ms *MemoryStore) Set(key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = gocache.DefaultExpiration
	}
	ms.cache.Set(key, value, expiration)
}

// Get retrieves a value by key
func (ms *MemoryStore) Get(key string) (interface{}, bool) {
	return ms.cache.Get(key)
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.cache.Delete(key)
}

// ItemCount returns the number of stored items, expired ones included until swept
func (ms *MemoryStore) ItemCount() int {
	return ms.cache.ItemCount()
}
