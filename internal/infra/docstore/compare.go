package docstore

import (
	"cmp"
	"encoding/json"
	"time"
)

// normalize converts values written to the memory store into the shapes a JSON
// document store would hand back, keeping time.Time for precise comparisons.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC()
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = map[string]any(normalizeFields(m))
		}
		return out
	case []Fields:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = map[string]any(normalizeFields(m))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case Fields:
		return map[string]any(normalizeFields(t))
	case map[string]any:
		return map[string]any(normalizeFields(t))
	default:
		return v
	}
}

func normalizeFields(f map[string]any) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if v == nil {
			continue
		}
		out[k] = normalize(v)
	}
	return out
}

// typeRank orders values of different kinds the way document stores usually do:
// null < bool < number < time < string < everything else.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int64, float64:
		return 2
	case time.Time:
		return 3
	case string:
		return 4
	default:
		return 5
	}
}

func compareValues(a, b any) int {
	a, b = normalize(a), normalize(b)
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case int64, float64:
		return cmp.Compare(toFloat(a), toFloat(b))
	case time.Time:
		return x.Compare(b.(time.Time))
	case string:
		return cmp.Compare(x, b.(string))
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func orderable(v any) bool {
	return typeRank(normalize(v)) < 5
}

func matches(doc Document, f Filter) bool {
	val, ok := fieldValue(doc, f.Field)
	if !ok {
		return false
	}
	switch f.Op {
	case OpEqual:
		return orderable(val) && compareValues(val, f.Value) == 0
	case OpNotEqual:
		return orderable(val) && compareValues(val, f.Value) != 0
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		if !orderable(val) || typeRank(normalize(val)) != typeRank(normalize(f.Value)) {
			return false
		}
		c := compareValues(val, f.Value)
		switch f.Op {
		case OpLess:
			return c < 0
		case OpLessOrEqual:
			return c <= 0
		case OpGreater:
			return c > 0
		default:
			return c >= 0
		}
	case OpIn:
		candidates, _ := normalize(f.Value).([]any)
		for _, c := range candidates {
			if compareValues(val, c) == 0 {
				return true
			}
		}
		return false
	case OpArrayContains:
		elems, _ := val.([]any)
		for _, e := range elems {
			if orderable(e) && compareValues(e, f.Value) == 0 {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func fieldValue(doc Document, field string) (any, bool) {
	switch field {
	case FieldCreateTime:
		return doc.CreateTime, true
	case FieldUpdateTime:
		return doc.UpdateTime, true
	}
	v, ok := doc.Data[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// compareDocs orders by the requested field with the id as tie breaker.
func compareDocs(a, b Document, order *Order) int {
	c := 0
	if order != nil {
		av, _ := fieldValue(a, order.Field)
		bv, _ := fieldValue(b, order.Field)
		c = compareValues(av, bv)
	}
	if c == 0 {
		c = cmp.Compare(a.ID, b.ID)
	}
	if order != nil && order.Desc {
		return -c
	}
	return c
}
