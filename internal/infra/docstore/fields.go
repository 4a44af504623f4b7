package docstore

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// TimeLayout is fixed width so encoded timestamps sort lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Fields is the native document payload: field name to scalar, array or map values.
type Fields map[string]any

func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

// Normalized is the form every store persists: nil map values are dropped at
// every level and scalars are canonical.
func (f Fields) Normalized() Fields {
	return normalizeFields(f)
}

// Removals lists, sorted, the top-level keys a patch deletes.
func (f Fields) Removals() []string {
	out := []string{}
	for k, v := range f {
		if v == nil {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Merge returns a copy of f with patch applied on top.
func (f Fields) Merge(patch Fields) Fields {
	out := f.Clone()
	if out == nil {
		out = Fields{}
	}
	maps.Copy(out, patch.Clone())
	return out
}

func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

func (f Fields) Bool(key string) bool {
	b, _ := f[key].(bool)
	return b
}

func (f Fields) Int(key string) int64 {
	switch v := f[key].(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}

// Time accepts both time.Time values and TimeLayout/RFC3339 strings, since
// JSON-backed stores hand timestamps back as text.
func (f Fields) Time(key string) time.Time {
	return toTime(f[key])
}

func (f Fields) TimePtr(key string) *time.Time {
	t := f.Time(key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (f Fields) Maps(key string) []Fields {
	switch v := f[key].(type) {
	case []map[string]any:
		out := make([]Fields, len(v))
		for i, m := range v {
			out[i] = Fields(m)
		}
		return out
	case []Fields:
		return v
	case []any:
		out := make([]Fields, 0, len(v))
		for _, e := range v {
			switch m := e.(type) {
			case map[string]any:
				out = append(out, Fields(m))
			case Fields:
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// TimeValue encodes an optional timestamp; nil stays nil so the field reads back empty.
func TimeValue(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC()
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t == nil {
			return time.Time{}
		}
		return *t
	case string:
		if parsed, err := time.Parse(TimeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Fields:
		return t.Clone()
	case map[string]any:
		return map[string]any(Fields(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, m := range t {
			out[i] = map[string]any(Fields(m).Clone())
		}
		return out
	default:
		return v
	}
}
