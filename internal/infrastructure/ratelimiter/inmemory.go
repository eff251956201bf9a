package ratelimiter

import (
	"sync"
	"time"
)

const cleanupInterval = time.Minute

type memoryEntry struct {
	value     int
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemory is the default bucket cache. Expired entries are swept by a
// background goroutine; Close stops it.
type InMemory struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	stop      chan struct{}
	closeOnce sync.Once
}

func NewInMemory() GetterSetter {
	im := &InMemory{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}

	go im.sweep()

	return im
}

func (i *InMemory) Get(key string) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	entry, ok := i.entries[key]
	if !ok || entry.expired(time.Now()) {
		return 0, ErrCacheMiss
	}

	return entry.value, nil
}

func (i *InMemory) Set(key string, value int) error {
	return i.SetWithExpiration(key, value, 0)
}

func (i *InMemory) SetWithExpiration(key string, value int, expiration time.Duration) error {
	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	i.mu.Lock()
	i.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	i.mu.Unlock()

	return nil
}

func (i *InMemory) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			i.removeExpired()
		case <-i.stop:
			return
		}
	}
}

func (i *InMemory) removeExpired() {
	now := time.Now()

	i.mu.Lock()
	defer i.mu.Unlock()

	for key, entry := range i.entries {
		if entry.expired(now) {
			delete(i.entries, key)
		}
	}
}

func (i *InMemory) Close() error {
	i.closeOnce.Do(func() {
		close(i.stop)
	})
	return nil
}
