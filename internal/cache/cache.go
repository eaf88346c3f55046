// Package cache keeps fetched response bodies in memory and on disk so
// that re-running a step does not hit EDGAR or a price provider again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const keyPrefix = "edgarmine:v1:"

// Cache stores response bodies by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a request URL. Credentials carried in the
// query string never appear in the key.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(hash[:])
}
