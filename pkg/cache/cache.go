// Package cache provides the rendered-diagram cache used by the HTTP
// service. Entries are keyed by content hash, so identical graph and
// configuration inputs always hit the same entry regardless of origin.
//
// Three backends are available: [FileCache] for single-host setups,
// [RedisCache] for shared deployments, and [NullCache] to disable
// caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores rendered diagram text by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// DiagramKey builds the cache key for a rendered diagram from the
// graph's content hash and the ordered flag names applied to the render.
func DiagramKey(graphHash string, flags []string) string {
	return hashKey("diagram", graphHash, flags)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(h[:]))
}
