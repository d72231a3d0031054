package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/IvanBrykalov/arenacache/arena"
	"github.com/IvanBrykalov/arenacache/list"
)

var (
	// ErrNotFound is returned by Query and Remove when the key is absent.
	ErrNotFound = errors.New("cache: key not found")

	// ErrFull is returned when an insert cannot be satisfied even after
	// eviction. With a positive capacity this is unreachable; it exists to
	// surface broken configurations instead of masking them.
	ErrFull = errors.New("cache: full")
)

// entry is the payload stored in list nodes: the value plus its own key, so
// that eviction from the list tail can clean up the key map.
type entry[K comparable, V any] struct {
	key K
	val V
}

// Cache is a bounded in-memory LRU cache. It composes a key→handle map with
// an arena-backed intrusive list: the map names list nodes by compact arena
// handles, the list payloads carry the keys, and neither structure owns the
// other.
//
// The cache is single-threaded: every operation completes synchronously and
// mutates the recency order (Query included), so concurrent use requires an
// external mutex around the whole value.
type Cache[K comparable, V any] struct {
	list *list.List[entry[K, V]]
	m    map[K]arena.Handle
	opt  Options[K, V]
}

// New constructs a cache holding up to capacity entries, with TTL disabled.
// Panics if capacity < 1.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithOptions(Options[K, V]{Capacity: capacity})
}

// NewWithTTL constructs a cache like New and enables retirement of entries
// older than ttl. Expired entries are retired synchronously during Insert;
// an entry may therefore outlive its deadline until the next mutation.
// Panics if capacity < 1.
func NewWithTTL[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	return NewWithOptions(Options[K, V]{Capacity: capacity, TTL: ttl})
}

// NewWithOptions constructs a cache from full Options.
// Defaults: nil Metrics -> NoopMetrics, nil Clock -> time.Now.
// Panics if Capacity < 1: a cache that cannot hold a single entry has no
// meaningful eviction behavior, so the configuration is rejected outright.
func NewWithOptions[K comparable, V any](opt Options[K, V]) *Cache[K, V] {
	if opt.Capacity < 1 {
		panic("cache: Capacity must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	l := list.NewWithTTL[entry[K, V]](opt.Capacity, opt.TTL)
	if opt.Clock != nil {
		l.SetClock(opt.Clock)
	}
	return &Cache[K, V]{
		list: l,
		m:    make(map[K]arena.Handle, opt.Capacity),
		opt:  opt,
	}
}

// Query returns the value stored under key and promotes the entry to
// most-recently-used. With TTL enabled the promotion also refreshes the
// entry's deadline. Returns ErrNotFound on a miss. Query does not retire
// expired entries; an entry past its deadline is still returned until the
// next Insert retires it.
func (c *Cache[K, V]) Query(key K) (V, error) {
	h, ok := c.m[key]
	if !ok {
		c.opt.Metrics.Miss()
		var zero V
		return zero, ErrNotFound
	}

	nh, err := c.list.MoveToFront(h)
	if err != nil {
		panic("cache: map handle no longer valid in list")
	}
	c.m[key] = nh

	it, err := c.list.Get(nh)
	if err != nil {
		panic("cache: promoted handle no longer valid in list")
	}
	c.opt.Metrics.Hit()
	return it.val, nil
}

// Insert stores value under key. An existing entry is updated in place and
// promoted (refreshing its TTL deadline); a new key is pushed at the head,
// silently evicting the least-recently-used entry if the cache is full.
// Afterwards, with TTL enabled, all currently-expired entries are retired.
//
// ErrFull is returned only if the list rejects the push, which cannot happen
// with a positive capacity and eviction enabled.
func (c *Cache[K, V]) Insert(key K, value V) error {
	if h, ok := c.m[key]; ok {
		it, err := c.list.Get(h)
		if err != nil {
			panic("cache: map handle no longer valid in list")
		}
		it.val = value

		nh, err := c.list.MoveToFront(h)
		if err != nil {
			panic("cache: map handle no longer valid in list")
		}
		c.m[key] = nh
	} else {
		if c.list.Len() >= c.opt.Capacity {
			ev, err := c.list.PopBack()
			if err != nil {
				panic("cache: full cache has no tail to evict")
			}
			delete(c.m, ev.key)
			c.opt.Metrics.Evict(EvictCapacity)
			if cb := c.opt.OnEvict; cb != nil {
				cb(ev.key, ev.val, EvictCapacity)
			}
		}

		nh, err := c.list.PushFront(entry[K, V]{key: key, val: value})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFull, err)
		}
		c.m[key] = nh
	}

	c.retire()
	c.opt.Metrics.Size(len(c.m))
	return nil
}

// Remove deletes key and returns the value it held.
// Returns ErrNotFound if the key is absent.
func (c *Cache[K, V]) Remove(key K) (V, error) {
	h, ok := c.m[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	delete(c.m, key)

	it, err := c.list.Remove(h)
	if err != nil {
		panic("cache: map handle no longer valid in list")
	}
	return it.val, nil
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.m) }

// retire drops every currently-expired entry from the list tail and removes
// the corresponding keys from the map. A nil result from the list means
// nothing expired (or TTL is disabled) and the loop body never runs.
func (c *Cache[K, V]) retire() {
	for _, it := range c.list.Retire() {
		delete(c.m, it.key)
		c.opt.Metrics.Evict(EvictTTL)
		if cb := c.opt.OnEvict; cb != nil {
			cb(it.key, it.val, EvictTTL)
		}
	}
}
