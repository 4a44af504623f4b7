package repository

import (
	"context"
	"log/slog"
	"time"

	"sitehub/internal/infra"
	"sitehub/internal/infra/cache"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/clock"

	"github.com/jinzhu/copier"
)

// Codec maps one entity kind onto store documents. T is the entity, P its patch type.
type Codec[T any, P any] interface {
	Collection() string
	Validate(e *T) error
	SetID(e *T, id string)
	Encode(e *T) docstore.Fields
	Decode(doc docstore.Document) (*T, error)
	// EncodePatch validates p and returns the fields to merge.
	EncodePatch(p P) (docstore.Fields, error)
	EncodeStatus(status, reason string, now time.Time) (docstore.Fields, error)
}

// Cached is a read-through/write-through repository over a document store.
// The store is authoritative; the cache only ever holds snapshots the store confirmed.
type Cached[T any, P any] struct {
	store  docstore.Store
	codec  Codec[T, P]
	cache  *cache.TTL[string, *T]
	clock  clock.Clock
	logger *slog.Logger
	idOf   func(*T) string
}

func NewCached[T any, P any](
	store docstore.Store,
	codec Codec[T, P],
	idOf func(*T) string,
	ttl time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) *Cached[T, P] {
	return &Cached[T, P]{
		store:  store,
		codec:  codec,
		cache:  cache.NewTTL[string, *T](ttl, clk),
		clock:  clk,
		logger: logger.With(slog.String("collection", codec.Collection())),
		idOf:   idOf,
	}
}

func (r *Cached[T, P]) Create(ctx context.Context, e *T) (*T, error) {
	if err := r.codec.Validate(e); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindValidation, "invalid entity", err)
	}
	id := r.store.NewID(r.codec.Collection())
	draft := clone(e)
	r.codec.SetID(draft, id)

	token := r.cache.Token()
	doc, err := r.store.Set(ctx, r.codec.Collection(), id, r.codec.Encode(draft))
	if err != nil {
		return nil, r.storeErr("failed to create", err)
	}
	return r.remember(doc, token)
}

// BatchCreate writes all entities in one atomic commit and caches them only after it lands.
func (r *Cached[T, P]) BatchCreate(ctx context.Context, entities []*T) ([]*T, error) {
	writes := make([]docstore.Write, len(entities))
	for i, e := range entities {
		if err := r.codec.Validate(e); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindValidation, "invalid entity in batch", err)
		}
		id := r.store.NewID(r.codec.Collection())
		draft := clone(e)
		r.codec.SetID(draft, id)
		writes[i] = docstore.Write{
			Kind:       docstore.WriteSet,
			Collection: r.codec.Collection(),
			ID:         id,
			Data:       r.codec.Encode(draft),
		}
	}
	if len(writes) == 0 {
		return []*T{}, nil
	}

	token := r.cache.Token()
	docs, err := r.store.Commit(ctx, writes)
	if err != nil {
		// a rejected batch is a store failure, not caller input
		return nil, infra.WrapRepoErr(r.logger, infra.KindPersistence, "failed to commit batch", err)
	}
	return r.rememberAll(docs, token)
}

func (r *Cached[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	if e, ok := r.cache.Get(id); ok {
		return clone(e), nil
	}
	token := r.cache.Token()
	doc, err := r.store.Get(ctx, r.codec.Collection(), id)
	if err != nil {
		return nil, r.storeErr("failed to find by id", err)
	}
	return r.remember(doc, token)
}

// Find always queries the store; each result refreshes its cache entry.
func (r *Cached[T, P]) Find(ctx context.Context, q docstore.Query) ([]*T, error) {
	q.Collection = r.codec.Collection()
	token := r.cache.Token()
	docs, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, r.storeErr("failed to query", err)
	}
	return r.rememberAll(docs, token)
}

func (r *Cached[T, P]) Count(ctx context.Context, filters ...docstore.Filter) (int, error) {
	n, err := r.store.Count(ctx, docstore.Query{Collection: r.codec.Collection(), Filters: filters})
	if err != nil {
		return 0, r.storeErr("failed to count", err)
	}
	return n, nil
}

func (r *Cached[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	fields, err := r.codec.EncodePatch(patch)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindValidation, "invalid patch", err)
	}
	return r.UpdateFields(ctx, id, fields)
}

func (r *Cached[T, P]) UpdateStatus(ctx context.Context, id, status, reason string) (*T, error) {
	fields, err := r.codec.EncodeStatus(status, reason, r.clock.Now())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindValidation, "invalid status", err)
	}
	return r.UpdateFields(ctx, id, fields)
}

// UpdateFields merges already validated fields and caches the canonical result.
func (r *Cached[T, P]) UpdateFields(ctx context.Context, id string, fields docstore.Fields) (*T, error) {
	token := r.cache.Token()
	doc, err := r.store.Update(ctx, r.codec.Collection(), id, fields)
	if err != nil {
		if infra.Classify(err) == infra.KindNotFound {
			r.cache.Delete(id)
		}
		return nil, r.storeErr("failed to update", err)
	}
	return r.remember(doc, token)
}

// Delete evicts the cache entry whatever the store reports.
func (r *Cached[T, P]) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, r.codec.Collection(), id)
	r.cache.Delete(id)
	if err != nil {
		return r.storeErr("failed to delete", err)
	}
	return nil
}

// Commit applies a batch built by a typed repository. Touched ids are evicted
// and updated documents re-cached once the batch lands.
func (r *Cached[T, P]) Commit(ctx context.Context, writes []docstore.Write) error {
	if len(writes) == 0 {
		return nil
	}
	token := r.cache.Token()
	docs, err := r.store.Commit(ctx, writes)
	if err != nil {
		for _, w := range writes {
			r.cache.Delete(w.ID)
		}
		return infra.WrapRepoErr(r.logger, infra.KindPersistence, "failed to commit batch", err)
	}
	for i, w := range writes {
		if w.Kind == docstore.WriteDelete {
			r.cache.Delete(w.ID)
			continue
		}
		if _, err := r.remember(docs[i], token); err != nil {
			r.cache.Delete(w.ID)
		}
	}
	return nil
}

func (r *Cached[T, P]) NewWrite(kind docstore.WriteKind, id string, data docstore.Fields) docstore.Write {
	return docstore.Write{Kind: kind, Collection: r.codec.Collection(), ID: id, Data: data}
}

func (r *Cached[T, P]) Now() time.Time {
	return r.clock.Now()
}

// Sweep drops expired cache entries.
func (r *Cached[T, P]) Sweep() int {
	return r.cache.Sweep()
}

// StartSweeper sweeps once per TTL until ctx is done.
func (r *Cached[T, P]) StartSweeper(ctx context.Context) {
	r.cache.Run(ctx, func(removed int) {
		if removed > 0 {
			r.logger.Debug("cache sweep", slog.Int("removed", removed))
		}
	})
}

// remember decodes doc and caches it unless the id was deleted after token.
func (r *Cached[T, P]) remember(doc docstore.Document, token uint64) (*T, error) {
	e, err := r.decode(doc)
	if err != nil {
		return nil, err
	}
	r.cache.SetSince(r.idOf(e), clone(e), token)
	return e, nil
}

func (r *Cached[T, P]) rememberAll(docs []docstore.Document, token uint64) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		e, err := r.remember(doc, token)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// refreshAll updates entries that are already cached and never seeds new ones.
func (r *Cached[T, P]) refreshAll(docs []docstore.Document) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		e, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		r.cache.Replace(r.idOf(e), clone(e))
		out = append(out, e)
	}
	return out, nil
}

func (r *Cached[T, P]) decode(doc docstore.Document) (*T, error) {
	e, err := r.codec.Decode(doc)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindPersistence, "failed to decode document "+doc.ID, err)
	}
	return e, nil
}

func (r *Cached[T, P]) storeErr(msg string, err error) error {
	return infra.WrapRepoErr(r.logger, infra.Classify(err), msg, err)
}

var timeConverters = []copier.TypeConverter{
	{
		SrcType: time.Time{},
		DstType: time.Time{},
		Fn:      func(src any) (any, error) { return src, nil },
	},
	{
		SrcType: (*time.Time)(nil),
		DstType: (*time.Time)(nil),
		Fn: func(src any) (any, error) {
			t, _ := src.(*time.Time)
			if t == nil {
				return (*time.Time)(nil), nil
			}
			c := *t
			return &c, nil
		},
	},
}

var copyOption = copier.Option{DeepCopy: true, Converters: timeConverters}

// clone hands out deep copies so callers can never mutate cached snapshots.
func clone[T any](src *T) *T {
	if src == nil {
		return nil
	}
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		slog.Warn("deep copy failed, falling back to shallow copy", "error", err.Error())
		*dst = *src
	}
	return dst
}
