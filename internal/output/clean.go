package output

import (
	"sort"

	"github.com/lox/notionctl/internal/notion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// cleanedFields are API bookkeeping members left out of cleaned objects.
var cleanedFields = map[string]bool{
	"object":   true,
	"type":     true,
	"parent":   true,
	"archived": true,
	"cover":    true,
	"icon":     true,
}

// CleanObject reduces a raw API object to its content: bookkeeping members are
// dropped, rich text collapses to plain text, properties are simplified and
// nested objects are cleaned the same way. Keys come out sorted.
func CleanObject(obj notion.Object) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()

	keys := make([]string, 0, len(obj))
	for k := range obj {
		if !cleanedFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		out.Set(key, cleanValue(obj, key))
	}
	return out
}

func cleanValue(obj notion.Object, key string) any {
	value := obj.Value(key)

	if props, ok := value.(notion.Properties); ok {
		return SimplifyProperties(props)
	}
	if nested, ok := notion.AsObject(value); ok {
		switch {
		case nested.Has("plain_text"):
			return nested.Value("plain_text")
		case key == "properties":
			return SimplifyProperties(notion.PropertiesFromMap(nested))
		default:
			return CleanObject(nested)
		}
	}

	items := obj.List(key)
	if len(items) == 0 {
		return value
	}
	first, ok := notion.AsObject(items[0])
	if !ok {
		return value
	}
	if first.Has("plain_text") {
		return PlainText(items)
	}
	cleaned := make([]any, 0, len(items))
	for _, item := range items {
		if nested, ok := notion.AsObject(item); ok {
			cleaned = append(cleaned, CleanObject(nested))
			continue
		}
		cleaned = append(cleaned, item)
	}
	return cleaned
}
