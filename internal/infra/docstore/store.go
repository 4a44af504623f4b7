// Package docstore is the boundary to the backing document database.
//
// Repositories only depend on the Store interface; Memory backs tests and local runs,
// pgstore keeps documents as JSONB rows in PostgreSQL.
package docstore

import (
	"context"
	"time"

	"sitehub/internal/pkg/errs"
)

var (
	ErrNotFound      = errs.New("document not found")
	ErrRejected      = errs.New("write rejected by store rules")
	ErrInvalidQuery  = errs.New("invalid query")
	ErrInvalidCursor = errs.New("cursor document not found")
	ErrClosed        = errs.New("store closed")
)

// Metadata pseudo-fields usable in filters and ordering.
const (
	FieldCreateTime = "_createTime"
	FieldUpdateTime = "_updateTime"
)

type Op string

const (
	OpEqual          Op = "=="
	OpNotEqual       Op = "!="
	OpLess           Op = "<"
	OpLessOrEqual    Op = "<="
	OpGreater        Op = ">"
	OpGreaterOrEqual Op = ">="
	OpIn             Op = "in"
	OpArrayContains  Op = "array-contains"
)

func (o Op) IsValid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpIn, OpArrayContains:
		return true
	default:
		return false
	}
}

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type Order struct {
	Field string
	Desc  bool
}

// Query is a filtered, optionally ordered and paginated request against one collection.
// StartAfter is the id of the last document of the previous page.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    *Order
	Limit      int
	StartAfter string
}

func (q Query) Validate() error {
	if q.Collection == "" {
		return errs.Mark(errs.New("collection is required"), ErrInvalidQuery)
	}
	for _, f := range q.Filters {
		if f.Field == "" || !f.Op.IsValid() {
			return errs.Mark(errs.Newf("bad filter %q %q", f.Field, f.Op), ErrInvalidQuery)
		}
	}
	if q.Limit < 0 {
		return errs.Mark(errs.New("negative limit"), ErrInvalidQuery)
	}
	return nil
}

type Document struct {
	Collection string
	ID         string
	Data       Fields
	CreateTime time.Time
	UpdateTime time.Time
}

type WriteKind int

const (
	WriteSet WriteKind = iota
	WriteUpdate
	WriteDelete
)

func (k WriteKind) String() string {
	switch k {
	case WriteSet:
		return "set"
	case WriteUpdate:
		return "update"
	case WriteDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type Write struct {
	Kind       WriteKind
	Collection string
	ID         string
	Data       Fields
}

// Unsubscribe stops a subscription. Once it returns no further callbacks run.
// It must not be called from inside the subscription's own callbacks.
type Unsubscribe func()

//go:generate mockgen -source=store.go -destination=../../../tests/mock/docstore/mock_store.go -package=docstoremock

// Store is the capability surface the repositories depend on.
type Store interface {
	// NewID allocates an identifier for a new document in collection.
	NewID(collection string) string
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, q Query) ([]Document, error)
	Count(ctx context.Context, q Query) (int, error)
	// Set creates or overwrites a document.
	Set(ctx context.Context, collection, id string, data Fields) (Document, error)
	// Update merges top-level fields into an existing document; ErrNotFound if absent.
	Update(ctx context.Context, collection, id string, patch Fields) (Document, error)
	// Delete removes a document; deleting an absent document is a no-op.
	Delete(ctx context.Context, collection, id string) error
	// Commit applies all writes atomically. Results line up with writes;
	// delete results carry only the id.
	Commit(ctx context.Context, writes []Write) ([]Document, error)
	// Subscribe delivers the full result set of q now and after every change to its collection.
	Subscribe(ctx context.Context, q Query, onSnapshot func([]Document), onError func(error)) (Unsubscribe, error)
}
