package notion

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Marshal encodes v as compact JSON with HTML-significant characters written
// literally. Ordered maps anywhere in v keep their insertion order.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Literal(v)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Literal replaces the ordered maps in v with values that encode without HTML
// escaping. go-ordered-map escapes its values itself, whatever the encoder says.
func Literal(v any) any {
	switch typed := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		return orderedJSON{typed}
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Literal(item)
		}
		return out
	case []Object:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Literal(item)
		}
		return out
	case Object:
		return literalMap(typed)
	case map[string]any:
		return literalMap(typed)
	default:
		return v
	}
}

func literalMap(m map[string]any) any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Literal(v)
	}
	return out
}

type orderedJSON struct {
	m *orderedmap.OrderedMap[string, any]
}

func (o orderedJSON) MarshalJSON() ([]byte, error) {
	return MarshalOrdered(o.m)
}

// MarshalOrdered encodes om as a JSON object in insertion order.
func MarshalOrdered[V any](om *orderedmap.OrderedMap[string, V]) ([]byte, error) {
	if om == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
