package pgstore

import (
	"encoding/json"
	"time"

	"sitehub/internal/infra/docstore"
)

// encodeValue converts a field value into its JSON form. Timestamps become
// fixed-width strings so range filters on jsonb compare them chronologically.
func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(docstore.TimeLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(docstore.TimeLayout)
	case docstore.Fields:
		return encodeMap(t)
	case map[string]any:
		return encodeMap(t)
	case []docstore.Fields:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = encodeMap(m)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = encodeMap(m)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = encodeValue(e)
		}
		return out
	default:
		return v
	}
}

func encodeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = encodeValue(v)
	}
	return out
}

func marshalFields(f docstore.Fields) ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(encodeMap(f))
}

func marshalValue(v any) ([]byte, error) {
	return json.Marshal(encodeValue(v))
}

func unmarshalFields(raw []byte) (docstore.Fields, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return docstore.Fields(m), nil
}
