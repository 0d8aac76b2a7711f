// Package autosave debounces draft persistence. Rapid updates collapse
// into one save carrying the latest state after a quiet period, and
// states identical to the last successful save are skipped entirely.
package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// SaveFunc persists one state snapshot.
type SaveFunc[T any] func(ctx context.Context, state T) error

type Coordinator[T any] struct {
	quiet   time.Duration
	save    SaveFunc[T]
	onError func(error)

	mu        sync.Mutex
	timer     *time.Timer
	pending   T
	lastSaved []byte
	closed    bool
}

// New builds a coordinator that fires a save once updates have been
// quiet for the given duration. onError receives save failures; failed
// saves are not retried until the state changes again.
func New[T any](quiet time.Duration, save SaveFunc[T], onError func(error)) *Coordinator[T] {
	if onError == nil {
		onError = func(error) {}
	}

	return &Coordinator[T]{
		quiet:   quiet,
		save:    save,
		onError: onError,
	}
}

// Update registers the latest state and (re)starts the quiet timer. A
// state identical to the last successfully saved one cancels any
// pending save instead of scheduling a new one.
func (c *Coordinator[T]) Update(state T) {
	encoded, err := json.Marshal(state)
	if err != nil {
		c.onError(fmt.Errorf("encoding autosave state: %w", err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.lastSaved != nil && string(encoded) == string(c.lastSaved) {
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}

		return
	}

	c.pending = state

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.quiet, c.flush)
}

func (c *Coordinator[T]) flush() {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}

	state := c.pending
	c.timer = nil
	c.mu.Unlock()

	encoded, err := json.Marshal(state)
	if err != nil {
		c.onError(fmt.Errorf("encoding autosave state: %w", err))
		return
	}

	if err := c.save(context.Background(), state); err != nil {
		c.onError(err)
		return
	}

	c.mu.Lock()
	c.lastSaved = encoded
	c.mu.Unlock()
}

// Close cancels any pending save. No save fires after Close returns.
func (c *Coordinator[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
