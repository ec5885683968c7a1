// Package notion models the untyped JSON payloads returned by the Notion API.
//
// Payload shapes are owned by the remote service. Accessors here never fail:
// missing keys and unexpected shapes produce zero values so callers can degrade
// to placeholders instead of erroring.
package notion

import (
	"fmt"

	"github.com/spf13/cast"
)

// Object is a decoded JSON object.
type Object map[string]any

// AsObject converts v to an Object when it is one.
func AsObject(v any) (Object, bool) {
	switch typed := v.(type) {
	case Object:
		return typed, typed != nil
	case map[string]any:
		return Object(typed), typed != nil
	default:
		return nil, false
	}
}

// Objects converts a JSON array into its object members, skipping anything
// that is not an object.
func Objects(v any) []Object {
	switch typed := v.(type) {
	case []Object:
		return typed
	case []map[string]any:
		out := make([]Object, 0, len(typed))
		for _, m := range typed {
			if m != nil {
				out = append(out, Object(m))
			}
		}
		return out
	case []any:
		out := make([]Object, 0, len(typed))
		for _, item := range typed {
			if obj, ok := AsObject(item); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return nil
	}
}

func (o Object) Value(key string) any {
	if o == nil {
		return nil
	}
	return o[key]
}

func (o Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o[key]
	return ok
}

// Str returns the value at key as a string. Nil and missing values are "".
func (o Object) Str(key string) string {
	return ToString(o.Value(key))
}

func (o Object) Bool(key string) bool {
	return cast.ToBool(o.Value(key))
}

// Map returns the nested object at key, or nil.
func (o Object) Map(key string) Object {
	obj, _ := AsObject(o.Value(key))
	return obj
}

// List returns the array at key, or nil.
func (o Object) List(key string) []any {
	switch typed := o.Value(key).(type) {
	case []any:
		return typed
	case []Object:
		out := make([]any, len(typed))
		for i, obj := range typed {
			out[i] = obj
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, obj := range typed {
			out[i] = obj
		}
		return out
	default:
		return nil
	}
}

// Type is shorthand for the "type" discriminator carried by properties and blocks.
func (o Object) Type() string {
	return o.Str("type")
}

// Children returns the nested child blocks attached to block.
func Children(block Object) []Object {
	children := Objects(block.Value("children"))
	if children == nil {
		return []Object{}
	}
	return children
}

// ToString converts scalars with cast and falls back to fmt for composite values.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
