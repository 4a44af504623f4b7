// Package pgstore keeps documents as JSONB rows in PostgreSQL.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const (
	notifyChannel = "document_changes"
	selectColumns = "collection, id, data, created_at, updated_at"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool        *pgxpool.Pool
	logger      *slog.Logger
	broadcaster *docstore.Broadcaster

	listenOnce sync.Once
	ready      chan struct{}
	stop       context.CancelFunc
	stopped    chan struct{}
}

var _ docstore.Store = (*Store)(nil)

func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{
		pool:        pool,
		logger:      logger,
		broadcaster: docstore.NewBroadcaster(),
		ready:       make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

// EnsureSchema creates the documents table and its change trigger if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return errs.Wrap(err, "apply document schema")
	}
	return nil
}

func (s *Store) NewID(_ string) string {
	return uuid.NewString()
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+selectColumns+" FROM documents WHERE collection = $1 AND id = $2",
		collection, id)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.Document{}, errs.Wrapf(docstore.ErrNotFound, "%s/%s", collection, id)
	}
	if err != nil {
		return docstore.Document{}, errs.Wrapf(err, "get %s/%s", collection, id)
	}
	return doc, nil
}

func (s *Store) Query(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if q.StartAfter != "" {
		var exists bool
		err := s.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1 AND id = $2)",
			q.Collection, q.StartAfter).Scan(&exists)
		if err != nil {
			return nil, errs.Wrap(err, "check cursor")
		}
		if !exists {
			return nil, errs.Wrapf(docstore.ErrInvalidCursor, "%s/%s", q.Collection, q.StartAfter)
		}
	}

	b := &sqlBuilder{}
	where, err := b.where(q)
	if err != nil {
		return nil, err
	}
	if q.StartAfter != "" {
		where += " AND " + b.startAfter(q)
	}
	sql := "SELECT " + selectColumns + " FROM documents WHERE " + where + " ORDER BY " + b.orderBy(q.OrderBy)
	if q.Limit > 0 {
		sql += " LIMIT " + strconv.Itoa(q.Limit)
	}

	rows, err := s.pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, errs.Wrapf(err, "query %s", q.Collection)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrapf(err, "query %s", q.Collection)
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, q docstore.Query) (int, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	b := &sqlBuilder{}
	where, err := b.where(q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM documents WHERE "+where, b.args...).Scan(&n); err != nil {
		return 0, errs.Wrapf(err, "count %s", q.Collection)
	}
	return n, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data docstore.Fields) (docstore.Document, error) {
	return setDocument(ctx, s.pool, collection, id, data)
}

func (s *Store) Update(ctx context.Context, collection, id string, patch docstore.Fields) (docstore.Document, error) {
	return updateDocument(ctx, s.pool, collection, id, patch)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return deleteDocument(ctx, s.pool, collection, id)
}

func (s *Store) Commit(ctx context.Context, writes []docstore.Write) ([]docstore.Document, error) {
	for _, w := range writes {
		if w.Collection == "" || w.ID == "" {
			return nil, errs.Mark(errs.Newf("%s write needs collection and id", w.Kind), docstore.ErrInvalidQuery)
		}
	}

	var results []docstore.Document
	err := s.withinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		results = make([]docstore.Document, len(writes))
		for i, w := range writes {
			var (
				doc docstore.Document
				err error
			)
			switch w.Kind {
			case docstore.WriteSet:
				doc, err = setDocument(ctx, tx, w.Collection, w.ID, w.Data)
			case docstore.WriteUpdate:
				doc, err = updateDocument(ctx, tx, w.Collection, w.ID, w.Data)
			case docstore.WriteDelete:
				err = deleteDocument(ctx, tx, w.Collection, w.ID)
				doc = docstore.Document{Collection: w.Collection, ID: w.ID}
			default:
				err = errs.Mark(errs.Newf("unknown write kind %d", w.Kind), docstore.ErrInvalidQuery)
			}
			if err != nil {
				return err
			}
			results[i] = doc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) Subscribe(
	ctx context.Context,
	q docstore.Query,
	onSnapshot func([]docstore.Document),
	onError func(error),
) (docstore.Unsubscribe, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	s.startListener()

	select {
	case <-s.ready:
	case <-s.stopped:
		return nil, docstore.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.broadcaster.Subscribe(ctx, q.Collection, func(ctx context.Context) ([]docstore.Document, error) {
		return s.Query(ctx, q)
	}, onSnapshot, onError)
}

// Close stops the change listener and every subscription. The pool is owned by the caller.
func (s *Store) Close() {
	s.listenOnce.Do(func() { close(s.stopped) })
	if s.stop != nil {
		s.stop()
		<-s.stopped
	}
	s.broadcaster.Close()
}

func setDocument(ctx context.Context, q querier, collection, id string, data docstore.Fields) (docstore.Document, error) {
	raw, err := marshalFields(data.Normalized())
	if err != nil {
		return docstore.Document{}, errs.Mark(errs.Wrapf(err, "encode %s/%s", collection, id), docstore.ErrInvalidQuery)
	}
	row := q.QueryRow(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, now(), now())
		ON CONFLICT (collection, id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = GREATEST(now(), documents.updated_at)
		RETURNING `+selectColumns,
		collection, id, string(raw))
	doc, err := scanDocument(row)
	if err != nil {
		return docstore.Document{}, errs.Wrapf(err, "set %s/%s", collection, id)
	}
	return doc, nil
}

// updateDocument merges top-level fields; a nil value removes the field.
// Nothing below the top level of the stored document is touched.
func updateDocument(ctx context.Context, q querier, collection, id string, patch docstore.Fields) (docstore.Document, error) {
	raw, err := marshalFields(patch.Normalized())
	if err != nil {
		return docstore.Document{}, errs.Mark(errs.Wrapf(err, "encode %s/%s", collection, id), docstore.ErrInvalidQuery)
	}
	row := q.QueryRow(ctx, `
		UPDATE documents
		SET data = (data || $3::jsonb) - $4::text[], updated_at = GREATEST(now(), updated_at)
		WHERE collection = $1 AND id = $2
		RETURNING `+selectColumns,
		collection, id, string(raw), patch.Removals())
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.Document{}, errs.Wrapf(docstore.ErrNotFound, "update %s/%s", collection, id)
	}
	if err != nil {
		return docstore.Document{}, errs.Wrapf(err, "update %s/%s", collection, id)
	}
	return doc, nil
}

func deleteDocument(ctx context.Context, q querier, collection, id string) error {
	if _, err := q.Exec(ctx, "DELETE FROM documents WHERE collection = $1 AND id = $2", collection, id); err != nil {
		return errs.Wrapf(err, "delete %s/%s", collection, id)
	}
	return nil
}

func scanDocument(row pgx.Row) (docstore.Document, error) {
	var (
		doc  docstore.Document
		raw  []byte
		c, u time.Time
	)
	if err := row.Scan(&doc.Collection, &doc.ID, &raw, &c, &u); err != nil {
		return docstore.Document{}, err
	}
	data, err := unmarshalFields(raw)
	if err != nil {
		return docstore.Document{}, errs.Wrapf(err, "decode %s/%s", doc.Collection, doc.ID)
	}
	doc.Data = data
	doc.CreateTime = c.UTC()
	doc.UpdateTime = u.UTC()
	return doc, nil
}
