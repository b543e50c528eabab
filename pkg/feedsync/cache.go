package feedsync

import (
	"sync"
	"time"
)

// beginState is the outcome of a load request against the cache
type beginState int

const (
	beginHit   beginState = iota // valid snapshot served from memory
	beginBusy                    // fetch already running, nothing to do
	beginFetch                   // caller owns a new fetch
)

// feedCache keeps the in-memory snapshot of one feed with its freshness and in-flight state.
// All transitions happen under mu, callbacks passed to its methods run under mu as well and
// must not call back into the cache.
type feedCache[T any] struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	snapshot  []T // nil when nothing was fetched since start or the last reset
	fetchedAt time.Time
	inFlight  bool
	gen       uint64 // bumped by reset, completions of older generations are dropped

	pending []func([]T) []T // edits made while a fetch is in flight, replayed on its batch
}

func newFeedCache[T any](ttl time.Duration, now func() time.Time) *feedCache[T] {
	return &feedCache[T]{ttl: ttl, now: now}
}

// begin is the atomic check-and-set of a load request. onHit gets the valid snapshot,
// onFetch gets the generation of the started fetch.
func (c *feedCache[T]) begin(onHit func(snapshot []T), onFetch func(gen uint64)) beginState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.validLocked() {
		onHit(c.snapshot)
		return beginHit
	}
	if c.inFlight {
		return beginBusy
	}
	c.inFlight = true
	c.pending = nil
	onFetch(c.gen)
	return beginFetch
}

// end completes the fetch of generation gen. fn gets the current snapshot, valid or stale,
// and replay which applies the edits made during the fetch to a new batch. fn returns the
// replacement or nil to keep the snapshot. Returns false and skips fn if the fetch
// was superseded by reset.
func (c *feedCache[T]) end(gen uint64, fn func(prev []T, replay func([]T) []T) []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}
	c.inFlight = false
	replay := func(batch []T) []T {
		for _, edit := range c.pending {
			if next := edit(batch); next != nil {
				batch = next
			}
		}
		return batch
	}
	if next := fn(c.snapshot, replay); next != nil {
		c.snapshot = next
		c.fetchedAt = c.now()
	}
	c.pending = nil
	return true
}

// current reports whether gen is still the live generation
func (c *feedCache[T]) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

// reset drops the snapshot, its timestamp and the in-flight mark
func (c *feedCache[T]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.snapshot = nil
	c.fetchedAt = time.Time{}
	c.inFlight = false
	c.pending = nil
}

// valid returns the snapshot if it is still fresh
func (c *feedCache[T]) valid() ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.validLocked() {
		return nil, false
	}
	return c.snapshot, true
}

// latest returns the snapshot regardless of age
func (c *feedCache[T]) latest() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// age returns time since the snapshot was fetched, false if there is no snapshot
func (c *feedCache[T]) age() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return 0, false
	}
	return c.now().Sub(c.fetchedAt), true
}

// modify applies edit to the snapshot without touching its timestamp, edit returns nil for
// no change. onChange gets the new snapshot. An edit made while a fetch is in flight is
// also replayed on the fetched batch.
func (c *feedCache[T]) modify(edit func(snapshot []T) []T, onChange func(next []T, inFlight bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		c.pending = append(c.pending, edit)
	}
	if c.snapshot == nil {
		return
	}
	if next := edit(c.snapshot); next != nil {
		c.snapshot = next
		if onChange != nil {
			onChange(next, c.inFlight)
		}
	}
}

// cacheStats is a point-in-time view of the cache
type cacheStats struct {
	size      int
	fetchedAt time.Time
	age       time.Duration // zero without a snapshot
	valid     bool
	inFlight  bool
}

func (c *feedCache[T]) stats() cacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := cacheStats{size: len(c.snapshot), fetchedAt: c.fetchedAt, inFlight: c.inFlight}
	if c.snapshot != nil {
		res.age = c.now().Sub(c.fetchedAt)
		res.valid = res.age < c.ttl
	}
	return res
}

func (c *feedCache[T]) validLocked() bool {
	return c.snapshot != nil && c.now().Sub(c.fetchedAt) < c.ttl
}
