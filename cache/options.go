package cache

import (
	"time"

	"github.com/IvanBrykalov/arenacache/list"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity — the least-recently-used entry was displaced to make
	// room for a new key.
	EvictCapacity EvictReason = iota
	// EvictTTL — the entry outlived the cache-wide TTL and was retired
	// during an insert.
	EvictTTL
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock = list.Clock

// Options configures the cache. Capacity is mandatory (≥ 1); the zero values
// of the remaining fields are safe, with defaults applied in NewWithOptions:
//   - TTL 0       => entries never expire
//   - nil Metrics => NoopMetrics
//   - nil Clock   => time.Now
type Options[K comparable, V any] struct {
	// Capacity is the maximum number of resident entries. Inserting a new
	// key at this size evicts the least-recently-used entry.
	Capacity int

	// TTL is the cache-wide time-to-live counted from each entry's last
	// insert or promotion. Expired entries are retired synchronously on the
	// next Insert; 0 disables expiration.
	TTL time.Duration

	// OnEvict is called for every capacity eviction and TTL retirement.
	// It runs inside the mutating operation; keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals.
	Metrics Metrics

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}
