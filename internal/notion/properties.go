package notion

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties maps property names to property objects in document order.
type Properties struct {
	names  []string
	values map[string]Object
}

// NewProperties returns an empty, ready to use Properties.
func NewProperties() Properties {
	return Properties{values: map[string]Object{}}
}

func (p *Properties) Set(name string, prop Object) {
	if p.values == nil {
		p.values = map[string]Object{}
	}
	if _, exists := p.values[name]; !exists {
		p.names = append(p.names, name)
	}
	p.values[name] = prop
}

func (p Properties) Get(name string) (Object, bool) {
	prop, ok := p.values[name]
	return prop, ok
}

func (p Properties) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

func (p Properties) Len() int {
	return len(p.names)
}

// PropertiesFromMap orders a plain map by property name.
func PropertiesFromMap(m map[string]any) Properties {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	props := NewProperties()
	for _, name := range names {
		obj, ok := AsObject(m[name])
		if !ok {
			obj = Object{}
		}
		props.Set(name, obj)
	}
	return props
}

// PropertiesOf returns the "properties" member of obj.
func PropertiesOf(obj Object) Properties {
	switch typed := obj.Value("properties").(type) {
	case Properties:
		return typed
	case *Properties:
		if typed != nil {
			return *typed
		}
	case Object:
		return PropertiesFromMap(typed)
	case map[string]any:
		return PropertiesFromMap(typed)
	}
	return NewProperties()
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = NewProperties()
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("property name: %w", err)
		}
		if dataType != jsonparser.Object {
			p.Set(name, Object{})
			return nil
		}
		obj, err := Decode(value)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		p.Set(name, obj)
		return nil
	})
}

func (p Properties) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, Object]()
	for _, name := range p.names {
		om.Set(name, p.values[name])
	}
	return MarshalOrdered(om)
}
