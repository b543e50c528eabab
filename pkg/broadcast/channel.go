// Package broadcast provides a replay-latest, multi-observer notification primitive.
// A Channel holds a single value slot. Publish overwrites the slot and notifies all
// subscribers, new subscribers immediately receive the held value. Intermediate values
// are not buffered, a slow observer only ever sees the latest one.
package broadcast

import (
	"context"
	"sync"
)

// Observable is the read side of a Channel
type Observable[T any] interface {
	Subscribe(fn func(T)) (unsubscribe func())
	Latest() (T, bool)
	Watch(ctx context.Context) <-chan T
}

// Channel is a single-slot broadcast with replay of the latest value
type Channel[T any] struct {
	deliver sync.Mutex // serializes publish and subscribe, keeps delivery order per channel

	mu     sync.RWMutex
	value  T
	has    bool
	nextID int
	subs   map[int]func(T)
}

// New makes an empty channel
func New[T any]() *Channel[T] {
	return &Channel[T]{subs: map[int]func(T){}}
}

// Publish stores v and delivers it to every current subscriber. Delivery order among subscribers is not defined.
// Subscriber callbacks must not publish to the same channel.
func (c *Channel[T]) Publish(v T) {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	c.value, c.has = v, true
	subs := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn, delivers the held value (if any) right away and returns a function removing the subscription
func (c *Channel[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	v, has := c.value, c.has
	c.mu.Unlock()

	if has {
		fn(v)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			c.deliver.Lock()
			defer c.deliver.Unlock()
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Latest returns the held value and false if nothing was published yet
func (c *Channel[T]) Latest() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.has
}

// Subscribers returns number of active subscriptions
func (c *Channel[T]) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

// Watch returns a channel of values. The returned channel has a single slot, a newer value
// replaces an unread older one. It is closed after ctx is done.
func (c *Channel[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)
	unsubscribe := c.Subscribe(func(v T) {
		// deliveries are serialized, this is the only sender
		select {
		case <-ch:
		default:
		}
		ch <- v
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		close(ch)
	}()
	return ch
}
