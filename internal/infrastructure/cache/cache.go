// Package cache is the TTL key-value store every source adapter sits behind,
// so rate-limited upstreams are never hit twice for the same answer inside a
// TTL window.
package cache

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bumpwatch/pkg/contextx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Store maps opaque string keys to JSON-serializable values with an expiry.
// A read past expiry is a miss and evicts the row. A broken backend degrades
// to always-miss; it never blocks or fails the caller.
type Store interface {
	// Get unmarshals the cached value into dest and reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration)
}

// Key joins key parts with ":", the convention for every cache key in this
// repo, e.g. "schedule:ATL:2026-08-31".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
