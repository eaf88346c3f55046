package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const entryExt = ".cache"

// DiskCache persists bodies as one JSON file per key under dir
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Body      []byte    `json:"body"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.path(key)
	entry, err := readEntry(path)
	if err != nil {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Body, true
}

// Set writes the entry through a temp file so readers never see a partial body
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	now := time.Now()
	data, err := json.Marshal(diskEntry{Body: value, StoredAt: now, ExpiresAt: now.Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("store cache file: %w", err)
	}
	return nil
}

func (c *DiskCache) Delete(key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry file but leaves the directory in place
func (c *DiskCache) Clear() error {
	_, err := c.sweep(func(string) bool { return true })
	return err
}

// Prune removes expired or unreadable entries and reports how many went
func (c *DiskCache) Prune() (int, error) {
	now := time.Now()
	return c.sweep(func(path string) bool {
		entry, err := readEntry(path)
		return err != nil || now.After(entry.ExpiresAt)
	})
}

func (c *DiskCache) sweep(remove func(path string) bool) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		path := filepath.Join(c.dir, e.Name())
		if !remove(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func (c *DiskCache) path(key string) string {
	// colons are not portable in file names
	return filepath.Join(c.dir, strings.ReplaceAll(key, ":", "_")+entryExt)
}

func readEntry(path string) (diskEntry, error) {
	var entry diskEntry
	data, err := os.ReadFile(path)
	if err != nil {
		return entry, err
	}
	err = json.Unmarshal(data, &entry)
	return entry, err
}
