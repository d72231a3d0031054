// Package cache provides a bounded, in-memory LRU cache whose linked-list
// nodes live in a generational arena, so node "pointers" are compact,
// liveness-checkable handles instead of owning references.
//
// # Design
//
//   - Storage: a map[K]arena.Handle for lookups and an arena-backed intrusive
//     doubly linked list (head=MRU, tail=LRU) for ordering. The map names list
//     nodes by handle; list payloads carry their key for eviction-driven map
//     cleanup. Neither structure owns the other, so there are no pointer
//     cycles and no unsafe aliasing.
//
//   - Handles: an arena handle pairs a slot index with the generation at
//     which the slot was occupied. Freed slots are recycled, but every
//     allocation advances the generation, so a stale handle to a reused slot
//     is rejected on access rather than silently reading the new occupant.
//
//   - Eviction: inserting a new key into a full cache silently removes the
//     tail (least-recently-used) entry. Query and Insert both promote the
//     touched entry to the head.
//
//   - TTL: a single cache-wide TTL stamps every entry at insert and refresh
//     at every promotion. Expiries are therefore monotone non-increasing from
//     head to tail, and retirement scans only from the tail, O(k) for k
//     expired entries. Retirement runs synchronously inside Insert; there is
//     no background machinery, so an entry can outlive its deadline until the
//     next mutation. Query returns such an entry rather than retiring it.
//
//   - Memory: the arena is pre-reserved to capacity and never shrinks.
//     Steady-state operations allocate nothing except the slice that collects
//     retired payloads.
//
// # Concurrency
//
// The cache is single-threaded and non-suspending: no operation blocks or
// yields, and every operation (Query included) mutates list order, so there
// are no safe concurrent read-only observers. Wrap the cache with a single
// mutex at the boundary for concurrent use, or compose several independent
// caches behind a key-hash router for finer-grained locking.
//
// # Basic usage
//
//	c := cache.New[string, int](1024)
//	_ = c.Insert("a", 1)
//	if v, err := c.Query("a"); err == nil {
//	    _ = v // use value
//	}
//	_, _ = c.Remove("a")
//
// With TTL
//
//	c := cache.NewWithTTL[string, string](1024, time.Minute)
//	_ = c.Insert("session", "token")
//	// a minute later, the next Insert retires "session"
//
// With observability
//
//	m := prom.New(nil, "app", "cache", nil) // implements Metrics
//	c := cache.NewWithOptions(cache.Options[string, string]{
//	    Capacity: 1024,
//	    Metrics:  m,
//	    OnEvict: func(k, v string, r cache.EvictReason) {
//	        // inspect displaced entries
//	    },
//	})
//
// User-visible errors are ErrNotFound (key absent) and ErrFull (reserved for
// broken configurations; normal inserts evict instead of failing). Internal
// handle invalidation is an invariant violation and panics rather than
// corrupting the map/list pairing.
package cache
