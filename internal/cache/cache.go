package cache

import (
	"context"
	"sync"
	"time"
)

// RouteCache хранит готовые ответы страниц дашборда по пути маршрута.
// Get возвращает (nil, nil), если записи нет.
type RouteCache interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Set(ctx context.Context, path string, data []byte) error
	Invalidate(ctx context.Context, path string) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache кеш маршрутов в памяти процесса, используется без Redis
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryCache создает кеш в памяти. при ttl <= 0 записи не устаревают.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[path]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, path)
		}
		c.mu.Unlock()
		return nil, nil
	}
	return entry.data, nil
}

func (c *MemoryCache) Set(_ context.Context, path string, data []byte) error {
	entry := memoryEntry{data: append([]byte(nil), data...)}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[path] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
	return nil
}
