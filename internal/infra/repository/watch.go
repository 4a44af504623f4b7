package repository

import (
	"context"
	"sync"
	"time"

	"sitehub/internal/infra/docstore"
)

// Snapshot is the full result set of a watched query at one point in time.
// Err is set instead of Items when the store reported a failure; the watch stays open.
type Snapshot[T any] struct {
	Items []*T
	Err   error
	At    time.Time
}

// Watcher delivers snapshots until Stop is called or the watch context ends.
// A slow consumer only ever sees the latest snapshot.
type Watcher[T any] struct {
	snapshots   chan Snapshot[T]
	done        chan struct{}
	mu          sync.Mutex
	closed      bool
	stopOnce    sync.Once
	unsubscribe docstore.Unsubscribe
}

func (w *Watcher[T]) Snapshots() <-chan Snapshot[T] {
	return w.snapshots
}

// Stop tears down the store subscription; once it returns no snapshot is delivered
// and the channel is closed.
func (w *Watcher[T]) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if w.unsubscribe != nil {
			w.unsubscribe()
		}
		w.mu.Lock()
		w.closed = true
		close(w.snapshots)
		w.mu.Unlock()
	})
}

func (w *Watcher[T]) publish(s Snapshot[T]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.snapshots <- s:
		return
	default:
	}
	// drop the unread snapshot in favour of the newer one
	select {
	case <-w.snapshots:
	default:
	}
	select {
	case w.snapshots <- s:
	default:
	}
}

// Watch subscribes to q. Each snapshot refreshes cache entries it contains that are
// already cached; a snapshot's read time is unknown, so it never seeds new ones.
func (r *Cached[T, P]) Watch(ctx context.Context, q docstore.Query) (*Watcher[T], error) {
	q.Collection = r.codec.Collection()
	w := &Watcher[T]{
		snapshots: make(chan Snapshot[T], 1),
		done:      make(chan struct{}),
	}

	unsubscribe, err := r.store.Subscribe(ctx, q,
		func(docs []docstore.Document) {
			items, err := r.refreshAll(docs)
			if err != nil {
				w.publish(Snapshot[T]{Err: err, At: r.clock.Now()})
				return
			}
			w.publish(Snapshot[T]{Items: items, At: r.clock.Now()})
		},
		func(err error) {
			w.publish(Snapshot[T]{Err: r.storeErr("watch failed", err), At: r.clock.Now()})
		},
	)
	if err != nil {
		return nil, r.storeErr("failed to watch", err)
	}
	w.unsubscribe = unsubscribe

	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-w.done:
		}
	}()
	return w, nil
}
