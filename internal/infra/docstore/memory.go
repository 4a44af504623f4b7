package docstore

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"

	"github.com/google/uuid"
)

// Rule inspects a write before it is applied; a non-nil error rejects the whole
// operation, mirroring security rules on a managed document store.
type Rule func(w Write) error

type MemoryOption func(*Memory)

func WithClock(c clock.Clock) MemoryOption {
	return func(m *Memory) { m.clock = c }
}

func WithRules(rules ...Rule) MemoryOption {
	return func(m *Memory) { m.rules = append(m.rules, rules...) }
}

// Stats counts store round trips; tests use it to observe cache hits.
type Stats struct {
	Gets    int64
	Queries int64
	Counts  int64
	Writes  int64
}

// Memory is an in-process Store. All writes for one call are applied under a
// single lock, so Commit is atomic.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	clock       clock.Clock
	rules       []Rule
	broadcaster *Broadcaster

	gets, queries, counts, writes atomic.Int64
}

var _ Store = (*Memory)(nil)

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		collections: make(map[string]map[string]Document),
		clock:       clock.NewRealClock(),
		broadcaster: NewBroadcaster(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Stats() Stats {
	return Stats{
		Gets:    m.gets.Load(),
		Queries: m.queries.Load(),
		Counts:  m.counts.Load(),
		Writes:  m.writes.Load(),
	}
}

func (m *Memory) NewID(_ string) string {
	return uuid.NewString()
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.gets.Add(1)

	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return Document{}, errs.Wrapf(ErrNotFound, "%s/%s", collection, id)
	}
	return cloneDoc(doc), nil
}

func (m *Memory) Query(ctx context.Context, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	m.queries.Add(1)

	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.filterLocked(q)
	slices.SortFunc(docs, func(a, b Document) int { return compareDocs(a, b, q.OrderBy) })

	if q.StartAfter != "" {
		cursor, ok := m.collections[q.Collection][q.StartAfter]
		if !ok {
			return nil, errs.Wrapf(ErrInvalidCursor, "%s/%s", q.Collection, q.StartAfter)
		}
		idx := slices.IndexFunc(docs, func(d Document) bool { return compareDocs(d, cursor, q.OrderBy) > 0 })
		if idx < 0 {
			docs = nil
		} else {
			docs = docs[idx:]
		}
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}

	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = cloneDoc(d)
	}
	return out, nil
}

func (m *Memory) Count(ctx context.Context, q Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := q.Validate(); err != nil {
		return 0, err
	}
	m.counts.Add(1)

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filterLocked(q)), nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, data Fields) (Document, error) {
	docs, err := m.Commit(ctx, []Write{{Kind: WriteSet, Collection: collection, ID: id, Data: data}})
	if err != nil {
		return Document{}, err
	}
	return docs[0], nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, patch Fields) (Document, error) {
	docs, err := m.Commit(ctx, []Write{{Kind: WriteUpdate, Collection: collection, ID: id, Data: patch}})
	if err != nil {
		return Document{}, err
	}
	return docs[0], nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	_, err := m.Commit(ctx, []Write{{Kind: WriteDelete, Collection: collection, ID: id}})
	return err
}

func (m *Memory) Commit(ctx context.Context, writes []Write) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, w := range writes {
		if w.Collection == "" || w.ID == "" {
			return nil, errs.Mark(errs.Newf("%s write needs collection and id", w.Kind), ErrInvalidQuery)
		}
		for _, rule := range m.rules {
			if err := rule(w); err != nil {
				return nil, errs.Mark(errs.Wrapf(err, "%s %s/%s", w.Kind, w.Collection, w.ID), ErrRejected)
			}
		}
	}
	m.writes.Add(1)

	m.mu.Lock()
	now := m.clock.Now().UTC()

	// stage on copies of the touched collections so a failing write leaves nothing behind
	staged := make(map[string]map[string]Document)
	stagedCollection := func(name string) map[string]Document {
		if c, ok := staged[name]; ok {
			return c
		}
		c := make(map[string]Document, len(m.collections[name]))
		for k, v := range m.collections[name] {
			c[k] = v
		}
		staged[name] = c
		return c
	}

	results := make([]Document, len(writes))
	for i, w := range writes {
		coll := stagedCollection(w.Collection)
		prev, exists := coll[w.ID]
		switch w.Kind {
		case WriteSet:
			doc := Document{Collection: w.Collection, ID: w.ID, Data: normalizeFields(w.Data), CreateTime: now, UpdateTime: now}
			if exists {
				doc.CreateTime = prev.CreateTime
				doc.UpdateTime = latest(now, prev.UpdateTime)
			}
			coll[w.ID] = doc
			results[i] = cloneDoc(doc)
		case WriteUpdate:
			if !exists {
				m.mu.Unlock()
				return nil, errs.Wrapf(ErrNotFound, "update %s/%s", w.Collection, w.ID)
			}
			merged := prev.Data.Clone()
			for k, v := range w.Data {
				if v == nil {
					delete(merged, k)
					continue
				}
				merged[k] = normalize(v)
			}
			doc := Document{Collection: w.Collection, ID: w.ID, Data: merged, CreateTime: prev.CreateTime, UpdateTime: latest(now, prev.UpdateTime)}
			coll[w.ID] = doc
			results[i] = cloneDoc(doc)
		case WriteDelete:
			delete(coll, w.ID)
			results[i] = Document{Collection: w.Collection, ID: w.ID}
		default:
			m.mu.Unlock()
			return nil, errs.Mark(errs.Newf("unknown write kind %d", w.Kind), ErrInvalidQuery)
		}
	}
	for name, coll := range staged {
		m.collections[name] = coll
	}
	m.mu.Unlock()

	for name := range staged {
		m.broadcaster.Notify(name)
	}
	return results, nil
}

func (m *Memory) Subscribe(ctx context.Context, q Query, onSnapshot func([]Document), onError func(error)) (Unsubscribe, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return m.broadcaster.Subscribe(ctx, q.Collection, func(ctx context.Context) ([]Document, error) {
		return m.Query(ctx, q)
	}, onSnapshot, onError)
}

// Close stops every live subscription.
func (m *Memory) Close() {
	m.broadcaster.Close()
}

func (m *Memory) filterLocked(q Query) []Document {
	var docs []Document
	for _, doc := range m.collections[q.Collection] {
		if matchesAll(doc, q.Filters) {
			docs = append(docs, doc)
		}
	}
	return docs
}

func matchesAll(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if !matches(doc, f) {
			return false
		}
	}
	return true
}

func cloneDoc(d Document) Document {
	d.Data = d.Data.Clone()
	return d
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
