package docstore

import (
	"context"
	"sync"
)

// Broadcaster runs subscriptions for a Store. Each subscription owns a goroutine that
// re-runs its query whenever its collection is marked dirty; change bursts coalesce
// into one re-run because the dirty signal is a one-slot channel.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[uint64]*subscription
	nextID uint64
	closed bool
}

type subscription struct {
	collection string
	dirty      chan struct{}
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[uint64]*subscription)}
}

// Subscribe starts a subscription whose first snapshot is produced immediately.
func (b *Broadcaster) Subscribe(
	ctx context.Context,
	collection string,
	run func(ctx context.Context) ([]Document, error),
	onSnapshot func([]Document),
	onError func(error),
) (Unsubscribe, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub := &subscription{
		collection: collection,
		dirty:      make(chan struct{}, 1),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	sub.dirty <- struct{}{}
	go sub.loop(subCtx, run, onSnapshot, onError)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			sub.cancel()
			<-sub.done
		})
	}, nil
}

func (s *subscription) loop(ctx context.Context, run func(context.Context) ([]Document, error), onSnapshot func([]Document), onError func(error)) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
		}

		docs, err := run(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if onError != nil {
				onError(err)
			}
			continue
		}
		onSnapshot(docs)
	}
}

// Notify marks every subscription on collection dirty.
func (b *Broadcaster) Notify(collection string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.collection == collection {
			s.markDirty()
		}
	}
}

// NotifyAll is used after a change feed reconnects and events may have been missed.
func (b *Broadcaster) NotifyAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.markDirty()
	}
}

func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close cancels all subscriptions and waits for their goroutines.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	b.closed = true
	subs := make([]*subscription, 0, len(b.subs))
	for id, s := range b.subs {
		subs = append(subs, s)
		delete(b.subs, id)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.cancel()
		<-s.done
	}
}

func (s *subscription) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}
