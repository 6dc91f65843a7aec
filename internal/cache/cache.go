// Package cache provides response cache stores and a named-store registry.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store is the interface for response cache backends.
type Store interface {
	// Get retrieves a cached value by key.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// Delete removes a cached value.
	Delete(ctx context.Context, key string) error
	// Purge removes all cached values.
	Purge(ctx context.Context) error
}

// DefaultStore is the conventional name for the primary store.
const DefaultStore = "default"

var (
	mu     sync.RWMutex
	stores = map[string]Store{}
)

// Register makes a store available under name, replacing any previous
// registration.
func Register(name string, s Store) {
	mu.Lock()
	defer mu.Unlock()
	stores[name] = s
}

// GetStore returns the store registered under name.
func GetStore(name string) (Store, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := stores[name]
	if !ok {
		return nil, fmt.Errorf("cache store %q is not registered", name)
	}
	return s, nil
}

// Names returns the registered store names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(stores))
	for name := range stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
