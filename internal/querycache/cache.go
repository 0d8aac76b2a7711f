// Package querycache provides an optimistic in-memory collection cache.
// A mutation applies to the cached record immediately, subscribers see
// the optimistic state, and a failed persistence rolls the record back
// to its pre-mutation snapshot.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotCached = errors.New("record not in cache")

// PersistFunc writes the optimistic value through to the backing store
// and returns the authoritative value.
type PersistFunc[T any] func(ctx context.Context, value T) (T, error)

type Cache[T any] struct {
	mu      sync.RWMutex
	keyOf   func(T) string
	items   map[string]T
	order   []string
	subs    map[int]func([]T)
	nextSub int
}

func New[T any](keyOf func(T) string) *Cache[T] {
	return &Cache[T]{
		keyOf: keyOf,
		items: make(map[string]T),
		subs:  make(map[int]func([]T)),
	}
}

// Replace swaps the whole cached collection, keeping insertion order.
func (c *Cache[T]) Replace(items []T) {
	c.mu.Lock()

	c.items = make(map[string]T, len(items))
	c.order = c.order[:0]

	for _, it := range items {
		key := c.keyOf(it)
		if _, ok := c.items[key]; !ok {
			c.order = append(c.order, key)
		}
		c.items[key] = it
	}

	snapshot := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, snapshot)
}

// Items returns the cached collection in insertion order.
func (c *Cache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshotLocked()
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[key]

	return v, ok
}

// Subscribe registers a listener for collection changes. The returned
// function cancels the subscription.
func (c *Cache[T]) Subscribe(fn func([]T)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Mutate applies an optimistic update to one record, then persists it.
// Subscribers are notified with the optimistic state before persistence
// starts. If persistence fails the record reverts to its snapshot and
// subscribers are notified again; the rest of the collection is never
// touched.
func (c *Cache[T]) Mutate(ctx context.Context, key string, apply func(T) T, persist PersistFunc[T]) (T, error) {
	c.mu.Lock()

	snapshot, ok := c.items[key]
	if !ok {
		c.mu.Unlock()

		var zero T
		return zero, fmt.Errorf("mutating %q: %w", key, ErrNotCached)
	}

	optimistic := apply(snapshot)
	c.items[key] = optimistic

	state := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, state)

	persisted, err := persist(ctx, optimistic)
	if err != nil {
		c.mu.Lock()
		c.items[key] = snapshot
		state = c.snapshotLocked()
		subs = c.subscribersLocked()
		c.mu.Unlock()

		notify(subs, state)

		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.items[key] = persisted
	state = c.snapshotLocked()
	subs = c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, state)

	return persisted, nil
}

func (c *Cache[T]) snapshotLocked() []T {
	out := make([]T, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}

	return out
}

func (c *Cache[T]) subscribersLocked() []func([]T) {
	subs := make([]func([]T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}

	return subs
}

func notify[T any](subs []func([]T), state []T) {
	for _, fn := range subs {
		fn(state)
	}
}
