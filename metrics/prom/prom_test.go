package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/IvanBrykalov/arenacache/cache"
)

// The adapter must register cleanly on a private registry and reflect every
// signal in the exported series.
func TestAdapter_Signals(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "arenacache", "test", nil)

	a.Hit()
	a.Hit()
	a.Miss()
	a.Evict(cache.EvictCapacity)
	a.Evict(cache.EvictTTL)
	a.Evict(cache.EvictTTL)
	a.Size(7)

	if got := testutil.ToFloat64(a.hits); got != 2 {
		t.Fatalf("hits: want 2, got %v", got)
	}
	if got := testutil.ToFloat64(a.misses); got != 1 {
		t.Fatalf("misses: want 1, got %v", got)
	}
	if got := testutil.ToFloat64(a.evicts.WithLabelValues("capacity")); got != 1 {
		t.Fatalf("capacity evictions: want 1, got %v", got)
	}
	if got := testutil.ToFloat64(a.evicts.WithLabelValues("ttl")); got != 2 {
		t.Fatalf("ttl evictions: want 2, got %v", got)
	}
	if got := testutil.ToFloat64(a.sizeEnt); got != 7 {
		t.Fatalf("size gauge: want 7, got %v", got)
	}
}

// End-to-end: a cache wired with the adapter drives the counters.
func TestAdapter_WiredIntoCache(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "arenacache", "wired", nil)

	c := cache.NewWithOptions(cache.Options[string, int]{Capacity: 2, Metrics: a})
	_ = c.Insert("a", 1)
	_ = c.Insert("b", 2)
	_, _ = c.Query("a")   // hit
	_, _ = c.Query("zzz") // miss
	_ = c.Insert("c", 3)  // displaces b

	if got := testutil.ToFloat64(a.hits); got != 1 {
		t.Fatalf("hits: want 1, got %v", got)
	}
	if got := testutil.ToFloat64(a.misses); got != 1 {
		t.Fatalf("misses: want 1, got %v", got)
	}
	if got := testutil.ToFloat64(a.evicts.WithLabelValues("capacity")); got != 1 {
		t.Fatalf("capacity evictions: want 1, got %v", got)
	}
	if got := testutil.ToFloat64(a.sizeEnt); got != 2 {
		t.Fatalf("size gauge: want 2, got %v", got)
	}
}
