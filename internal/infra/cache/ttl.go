// Package cache holds the in-process TTL cache used by the repositories.
package cache

import (
	"context"
	"sync"
	"time"

	"sitehub/internal/pkg/clock"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTL is a map whose entries expire a fixed duration after insertion.
// Expired entries are never returned; they are dropped on access or by Sweep.
//
// Every Delete is numbered. A reader takes a Token before going to the backing
// store and inserts with SetSince, which refuses keys deleted after the token.
type TTL[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	clock   clock.Clock

	seq       uint64
	deletedAt map[K]uint64
	// floor stands in for every tombstone Sweep has pruned.
	floor uint64
}

func NewTTL[K comparable, V any](ttl time.Duration, c clock.Clock) *TTL[K, V] {
	return &TTL[K, V]{
		entries:   make(map[K]entry[V]),
		ttl:       ttl,
		clock:     c,
		deletedAt: make(map[K]uint64),
	}
}

func (c *TTL[K, V]) TTL() time.Duration {
	return c.ttl
}

func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.fresh(e, c.clock.Now()) {
		return e.value, true
	}

	c.mu.Lock()
	// re-check under the write lock; a concurrent Set may have refreshed it
	if cur, ok := c.entries[key]; ok && !c.fresh(cur, c.clock.Now()) {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return zero, false
}

func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, insertedAt: c.clock.Now()}
	c.mu.Unlock()
}

// Token returns the current delete sequence number.
func (c *TTL[K, V]) Token() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq
}

// SetSince stores value unless key was deleted after token was taken.
func (c *TTL[K, V]) SetSince(key K, value V, token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.deletedAt[key]
	if !ok {
		last = c.floor
	}
	if last > token {
		return false
	}
	c.entries[key] = entry[V]{value: value, insertedAt: c.clock.Now()}
	return true
}

// Replace overwrites key only while it holds a fresh entry.
func (c *TTL[K, V]) Replace(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	cur, ok := c.entries[key]
	if !ok || !c.fresh(cur, now) {
		return false
	}
	c.entries[key] = entry[V]{value: value, insertedAt: now}
	return true
}

// Delete evicts key and leaves a tombstone for readers still in flight.
func (c *TTL[K, V]) Delete(key K) {
	c.mu.Lock()
	c.seq++
	c.deletedAt[key] = c.seq
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *TTL[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes every expired entry and reports how many were dropped.
// Tombstones are pruned too, which makes any older token refuse every key.
func (c *TTL[K, V]) Sweep() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.deletedAt) > 0 {
		c.floor = c.seq
		clear(c.deletedAt)
	}

	removed := 0
	for k, e := range c.entries {
		if !c.fresh(e, now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Run sweeps once per TTL until ctx is cancelled.
func (c *TTL[K, V]) Run(ctx context.Context, onSweep func(removed int)) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := c.Sweep()
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (c *TTL[K, V]) fresh(e entry[V], now time.Time) bool {
	return now.Sub(e.insertedAt) < c.ttl
}
