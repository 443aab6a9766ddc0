// Package cache stores fetched page bodies so repeated harvests during
// development do not hit the source sites.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with per-entry expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a filesystem-safe key from a page URL
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "page-v1-" + hex.EncodeToString(hash[:])
}
