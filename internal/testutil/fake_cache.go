package testutil

import (
	"context"
	"sync"
	"time"
)

// FakeCache is a map-backed cache store that records writes for assertions.
// TTLs are recorded but never enforced.
type FakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	sets    int

	// SetErr, when non-nil, is returned by every Set.
	SetErr error
	// GetErr, when non-nil, is returned by every Get.
	GetErr error
}

// NewFakeCache returns an empty FakeCache.
func NewFakeCache() *FakeCache {
	return &FakeCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

// Get retrieves a value by key.
func (c *FakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set stores a value and records the write.
func (c *FakeCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.entries[key] = val
	c.ttls[key] = ttl
	c.sets++
	return nil
}

// Delete removes a value.
func (c *FakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.ttls, key)
	return nil
}

// Purge removes all values.
func (c *FakeCache) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	c.ttls = make(map[string]time.Duration)
	return nil
}

// Entry returns the stored value for key, if any.
func (c *FakeCache) Entry(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// TTL returns the TTL recorded for key.
func (c *FakeCache) TTL(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.ttls[key]
	return d, ok
}

// Sets returns the number of successful writes.
func (c *FakeCache) Sets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// Len returns the number of stored entries.
func (c *FakeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
