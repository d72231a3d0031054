// Package list implements an intrusive doubly linked list whose nodes live in
// a generational arena (head=MRU, tail=LRU). Links are arena handles rather
// than pointers, so the list never forms ownership cycles and stale links are
// detectable. An optional list-wide TTL stamps every inserted or promoted node
// with an absolute expiry; because each stamp uses the current time, expiries
// are monotone non-increasing from head to tail, and expired nodes can be
// retired by scanning only from the tail.
package list

import (
	"errors"
	"fmt"
	"time"

	"github.com/IvanBrykalov/arenacache/arena"
)

var (
	// ErrNotFound is returned when a handle does not name a live node.
	ErrNotFound = errors.New("list: handle does not point to a valid node")
	// ErrEmpty is returned by pop/peek operations on an empty list.
	ErrEmpty = errors.New("list: empty")
	// ErrFull is returned when the underlying arena has no room left.
	// It wraps arena.ErrOutOfMemory.
	ErrFull = errors.New("list: full")
)

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// node is an intrusive list element stored inside the arena.
type node[T any] struct {
	value T

	// Links are handles, not pointers. The zero Handle means "none".
	prev arena.Handle
	next arena.Handle

	// Absolute expiration deadline in UnixNano.
	// Zero means "no TTL".
	exp int64
}

// List is a doubly linked list backed by an owned arena.
// Not safe for concurrent use.
type List[T any] struct {
	arena *arena.Arena[node[T]]
	head  arena.Handle // MRU
	tail  arena.Handle // LRU
	len   int

	// ttl is the list-wide time-to-live; 0 disables TTL machinery.
	ttl   time.Duration
	clock Clock
}

// New creates a list whose arena is pre-reserved to capacity, with TTL
// disabled.
func New[T any](capacity int) *List[T] {
	a := arena.New[node[T]](capacity)
	a.Reserve(capacity)
	return &List[T]{arena: a}
}

// NewWithTTL creates a list like New and enables expiry stamping with the
// given ttl. A non-positive ttl leaves TTL machinery inert.
func NewWithTTL[T any](capacity int, ttl time.Duration) *List[T] {
	l := New[T](capacity)
	if ttl > 0 {
		l.ttl = ttl
	}
	return l
}

// SetClock overrides the time source (tests). Nil restores time.Now.
func (l *List[T]) SetClock(c Clock) { l.clock = c }

func (l *List[T]) now() int64 {
	if l.clock != nil {
		return l.clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

// PushFront inserts value before the current head and returns the new node's
// handle. With TTL enabled the node's expiry is set to now+TTL.
// Returns ErrFull (wrapping arena.ErrOutOfMemory) when the arena is full.
func (l *List[T]) PushFront(value T) (arena.Handle, error) {
	n := node[T]{value: value, next: l.head}
	if l.ttl > 0 {
		n.exp = l.now() + int64(l.ttl)
	}

	h, err := l.arena.Insert(n)
	if err != nil {
		return arena.Handle{}, fmt.Errorf("%w: %w", ErrFull, err)
	}

	if !l.head.IsZero() {
		l.mustGet(l.head).prev = h
	} else {
		// Empty list: the new node is also the tail.
		l.tail = h
	}
	l.head = h
	l.len++
	return h, nil
}

// PushBack inserts value after the current tail and returns the new node's
// handle. With TTL enabled the node is stamped like PushFront; note that a
// fresh tail insert makes the tail the newest node, so interleaving PushBack
// with TTL retirement causes Retire to stop early at it. PushBack is intended
// for TTL-free lists.
func (l *List[T]) PushBack(value T) (arena.Handle, error) {
	n := node[T]{value: value, prev: l.tail}
	if l.ttl > 0 {
		n.exp = l.now() + int64(l.ttl)
	}

	h, err := l.arena.Insert(n)
	if err != nil {
		return arena.Handle{}, fmt.Errorf("%w: %w", ErrFull, err)
	}

	if !l.tail.IsZero() {
		l.mustGet(l.tail).next = h
	} else {
		l.head = h
	}
	l.tail = h
	l.len++
	return h, nil
}

// Remove unlinks the node named by h, frees its slot, and returns its value.
// Returns ErrNotFound if h is invalid.
func (l *List[T]) Remove(h arena.Handle) (T, error) {
	n, ok := l.arena.Remove(h)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}

	// Patch neighbors (or head/tail at the ends). Handles are re-resolved
	// right before each mutation; a dangling neighbor link means the list
	// structure is corrupt.
	if !n.prev.IsZero() {
		l.mustGet(n.prev).next = n.next
	} else {
		l.head = n.next
	}
	if !n.next.IsZero() {
		l.mustGet(n.next).prev = n.prev
	} else {
		l.tail = n.prev
	}

	l.len--
	return n.value, nil
}

// MoveToFront promotes the node named by h to the head position and returns
// the handle callers must use from now on. The implementation relinks in
// place, so the returned handle happens to equal h, but that is not part of
// the contract. With TTL enabled the node's expiry is refreshed to now+TTL,
// keeping expiries monotone since the promoted node becomes the newest.
func (l *List[T]) MoveToFront(h arena.Handle) (arena.Handle, error) {
	n, ok := l.arena.Get(h)
	if !ok {
		return arena.Handle{}, ErrNotFound
	}

	if l.ttl > 0 {
		n.exp = l.now() + int64(l.ttl)
	}
	if h == l.head {
		return h, nil
	}

	// Detach.
	if !n.prev.IsZero() {
		l.mustGet(n.prev).next = n.next
	}
	if !n.next.IsZero() {
		l.mustGet(n.next).prev = n.prev
	}
	if l.tail == h {
		l.tail = n.prev
	}

	// Splice before the current head.
	n.prev = arena.Handle{}
	n.next = l.head
	l.mustGet(l.head).prev = h
	l.head = h
	return h, nil
}

// PopFront removes the head node and returns its value.
func (l *List[T]) PopFront() (T, error) {
	if l.head.IsZero() {
		var zero T
		return zero, ErrEmpty
	}
	return l.Remove(l.head)
}

// PopBack removes the tail node and returns its value.
func (l *List[T]) PopBack() (T, error) {
	if l.tail.IsZero() {
		var zero T
		return zero, ErrEmpty
	}
	return l.Remove(l.tail)
}

// PeekFront returns the head value without removing it.
func (l *List[T]) PeekFront() (T, error) {
	if l.head.IsZero() {
		var zero T
		return zero, ErrEmpty
	}
	return l.mustGet(l.head).value, nil
}

// PeekBack returns the tail value without removing it.
func (l *List[T]) PeekBack() (T, error) {
	if l.tail.IsZero() {
		var zero T
		return zero, ErrEmpty
	}
	return l.mustGet(l.tail).value, nil
}

// Retire removes expired nodes starting from the tail and returns their
// values in tail-to-head order. The current time is read once; the scan stops
// at the first non-expired node, which is correct because expiries are
// monotone non-increasing toward the tail. Returns nil — never a non-nil
// empty slice — when TTL is disabled or nothing expired, so callers can use
// the nil result as a cheap "nothing changed" signal.
func (l *List[T]) Retire() []T {
	if l.ttl <= 0 {
		return nil
	}
	now := l.now()
	var values []T
	for !l.tail.IsZero() {
		if l.mustGet(l.tail).exp > now {
			break
		}
		v, err := l.Remove(l.tail)
		if err != nil {
			panic("list: tail handle invalid during retire")
		}
		values = append(values, v)
	}
	return values
}

// Get returns a pointer to the payload of the node named by h, or
// ErrNotFound if h is invalid. The pointer stays valid only until the next
// list mutation; callers must re-resolve the handle across mutations.
func (l *List[T]) Get(h arena.Handle) (*T, error) {
	n, ok := l.arena.Get(h)
	if !ok {
		return nil, ErrNotFound
	}
	return &n.value, nil
}

// Len returns the number of nodes in the list.
func (l *List[T]) Len() int { return l.len }

// IsEmpty reports whether the list holds no nodes.
func (l *List[T]) IsEmpty() bool { return l.head.IsZero() }

// IsFull reports whether the list has reached its arena's capacity ceiling.
func (l *List[T]) IsFull() bool { return l.len == l.arena.Cap() }

// Reserve grows the backing arena to hold at least n nodes.
func (l *List[T]) Reserve(n int) { l.arena.Reserve(n) }

// mustGet resolves a handle that the list's own invariants guarantee to be
// live. A failure here means the link structure is corrupt, which is not
// recoverable.
func (l *List[T]) mustGet(h arena.Handle) *node[T] {
	n, ok := l.arena.Get(h)
	if !ok {
		panic("list: broken link")
	}
	return n
}
