package pgstore

import (
	"fmt"
	"strconv"
	"strings"

	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/errs"
)

// sqlBuilder accumulates positional arguments while rendering a WHERE clause.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func metaColumn(field string) (string, bool) {
	switch field {
	case docstore.FieldCreateTime:
		return "created_at", true
	case docstore.FieldUpdateTime:
		return "updated_at", true
	default:
		return "", false
	}
}

// fieldExpr is the jsonb expression selecting a top-level field.
func (b *sqlBuilder) fieldExpr(field string) string {
	if col, ok := metaColumn(field); ok {
		return col
	}
	return "data->" + b.arg(field) + "::text"
}

func (b *sqlBuilder) where(q docstore.Query) (string, error) {
	clauses := []string{"collection = " + b.arg(q.Collection)}
	for _, f := range q.Filters {
		clause, err := b.filter(f)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	return strings.Join(clauses, " AND "), nil
}

func (b *sqlBuilder) filter(f docstore.Filter) (string, error) {
	if col, ok := metaColumn(f.Field); ok {
		return b.metaFilter(col, f)
	}

	var (
		raw []byte
		err error
	)
	switch f.Op {
	case docstore.OpArrayContains:
		raw, err = marshalValue([]any{f.Value})
	default:
		raw, err = marshalValue(f.Value)
	}
	if err != nil {
		return "", errs.Mark(errs.Wrapf(err, "encode filter %q", f.Field), docstore.ErrInvalidQuery)
	}

	field := b.fieldExpr(f.Field)
	value := b.arg(string(raw)) + "::jsonb"

	switch f.Op {
	case docstore.OpEqual:
		return fmt.Sprintf("%s = %s", field, value), nil
	case docstore.OpNotEqual:
		return fmt.Sprintf("(jsonb_typeof(%s) NOT IN ('null', 'array', 'object') AND %s <> %s)", field, field, value), nil
	case docstore.OpLess, docstore.OpLessOrEqual, docstore.OpGreater, docstore.OpGreaterOrEqual:
		return fmt.Sprintf("(jsonb_typeof(%s) = jsonb_typeof(%s) AND %s %s %s)", field, value, field, string(f.Op), value), nil
	case docstore.OpIn:
		return fmt.Sprintf("%s @> jsonb_build_array(%s)", value, field), nil
	case docstore.OpArrayContains:
		return fmt.Sprintf("(jsonb_typeof(%s) = 'array' AND %s @> %s)", field, field, value), nil
	default:
		return "", errs.Mark(errs.Newf("unsupported operator %q", f.Op), docstore.ErrInvalidQuery)
	}
}

func (b *sqlBuilder) metaFilter(col string, f docstore.Filter) (string, error) {
	switch f.Op {
	case docstore.OpEqual:
		return col + " = " + b.arg(f.Value), nil
	case docstore.OpNotEqual:
		return col + " <> " + b.arg(f.Value), nil
	case docstore.OpLess, docstore.OpLessOrEqual, docstore.OpGreater, docstore.OpGreaterOrEqual:
		return col + " " + string(f.Op) + " " + b.arg(f.Value), nil
	default:
		return "", errs.Mark(errs.Newf("operator %q not supported on %s", f.Op, f.Field), docstore.ErrInvalidQuery)
	}
}

func (b *sqlBuilder) orderBy(order *docstore.Order) string {
	dir := "ASC"
	if order != nil && order.Desc {
		dir = "DESC"
	}
	if order == nil {
		return "id " + dir
	}
	return fmt.Sprintf("%s %s, id %s", b.fieldExpr(order.Field), dir, dir)
}

// startAfter renders a keyset predicate positioned after the cursor document.
func (b *sqlBuilder) startAfter(q docstore.Query) string {
	cmp := ">"
	if q.OrderBy != nil && q.OrderBy.Desc {
		cmp = "<"
	}
	cursor := b.arg(q.StartAfter)
	if q.OrderBy == nil {
		return fmt.Sprintf("id %s %s", cmp, cursor)
	}
	field := b.fieldExpr(q.OrderBy.Field)
	collection := b.arg(q.Collection)
	return fmt.Sprintf("(%s, id) %s ((SELECT c.%s FROM documents c WHERE c.collection = %s AND c.id = %s), %s)",
		field, cmp, field, collection, cursor, cursor)
}
