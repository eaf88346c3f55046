package cache

import "time"

const memoryCleanupInterval = 10 * time.Minute

// LayeredCache checks memory before disk and writes through to both
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayeredCache creates the two-layer cache used by the fetcher
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, memoryCleanupInterval),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	val, found := c.disk.Get(key)
	if !found {
		return nil, false
	}
	// promote with the memory default TTL
	_ = c.memory.Set(key, val, 0)
	return val, true
}

// Set stores value in memory with the memory default TTL and on disk with ttl
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, 0); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}

// Prune drops expired disk entries
func (c *LayeredCache) Prune() (int, error) {
	return c.disk.Prune()
}
