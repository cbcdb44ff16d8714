package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// KeyPrefix versions cached entries so format changes never read stale data
const KeyPrefix = "lovekey:v1:"

// Cache stores fetched source documents
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a source location
func Key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return KeyPrefix + hex.EncodeToString(hash[:])
}
