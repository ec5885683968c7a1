package notion

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// Decode parses a single API object. Its "properties" member, when present,
// keeps the order the API sent it in.
func Decode(data []byte) (Object, error) {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = Object{}
	}

	raw, dataType, _, err := jsonparser.Get(data, "properties")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return obj, nil
		}
		return nil, err
	}
	if dataType != jsonparser.Object {
		return obj, nil
	}

	var props Properties
	if err := props.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	obj["properties"] = props
	return obj, nil
}

// DecodeList decodes every object in the array found at key.
func DecodeList(data []byte, key string) ([]Object, error) {
	out := []Object{}

	_, dataType, _, err := jsonparser.Get(data, key)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return out, nil
		}
		return nil, err
	}
	if dataType != jsonparser.Array {
		return out, nil
	}

	var decodeErr error
	_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if decodeErr != nil || dataType != jsonparser.Object {
			return
		}
		obj, err := Decode(value)
		if err != nil {
			decodeErr = err
			return
		}
		out = append(out, obj)
	}, key)
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}
