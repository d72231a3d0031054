package cache

import (
	"math/rand"
	"strconv"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// The cache itself is single-threaded; the documented way to share it is one
// mutex around the whole value. This test runs a mixed workload behind such a
// mutex and should pass under `-race` without detector reports, confirming
// that no operation touches state outside the guarded section.
func TestRace_MutexWrapped(t *testing.T) {
	var mu sync.Mutex
	c := NewWithTTL[string, []byte](8_192, 50*time.Millisecond)

	const workers = 16
	keyspace := 50_000
	deadline := time.Now().Add(2 * time.Second)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		id := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(id)*9973 + 1))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				mu.Lock()
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% — Remove
					_, _ = c.Remove(k)
				case 5, 6, 7, 8, 9, 10, 11, 12, 13, 14: // ~10% — Insert
					_ = c.Insert(k, []byte("x"))
				default: // ~85% — Query
					_, _ = c.Query(k)
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if c.Len() > 8_192 {
		t.Fatalf("size bound violated: %d", c.Len())
	}
}
