package output

import (
	"fmt"

	"github.com/lox/notionctl/internal/notion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SimplifyProperties reduces every property value to a plain scalar, list or
// mapping, keeping the property order.
func SimplifyProperties(props notion.Properties) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	for _, name := range props.Names() {
		prop, _ := props.Get(name)
		out.Set(name, SimplifyProperty(prop))
	}
	return out
}

// SimplifyProperty reduces a single tagged property value. Unknown tags yield
// the raw value stored under the tag name.
func SimplifyProperty(prop notion.Object) any {
	typ := prop.Type()
	if typ == "" || !prop.Has(typ) {
		return nil
	}
	raw := prop.Value(typ)

	switch typ {
	case "title", "rich_text":
		return PlainText(raw)
	case "select", "status":
		return optionName(raw)
	case "multi_select":
		names := []any{}
		for _, opt := range notion.Objects(raw) {
			names = append(names, opt.Value("name"))
		}
		return names
	case "date":
		return simplifyDate(raw)
	case "checkbox":
		return prop.Bool(typ)
	case "files":
		files := []any{}
		for _, f := range notion.Objects(raw) {
			files = append(files, map[string]any{
				"name": f.Value("name"),
				"url":  fileURL(f),
			})
		}
		return files
	case "relation":
		ids := []any{}
		for _, rel := range notion.Objects(raw) {
			ids = append(ids, rel.Value("id"))
		}
		return ids
	case "people":
		people := []any{}
		for _, person := range notion.Objects(raw) {
			people = append(people, userName(person))
		}
		return people
	case "created_by", "last_edited_by":
		user, ok := notion.AsObject(raw)
		if !ok {
			return nil
		}
		return userName(user)
	case "formula":
		return simplifyComputed(raw)
	case "rollup":
		return simplifyRollup(raw)
	case "unique_id":
		return simplifyUniqueID(raw)
	default:
		// number, url, email, phone_number, created_time, last_edited_time and
		// anything unrecognised pass through untouched.
		return raw
	}
}

func optionName(v any) any {
	opt, ok := notion.AsObject(v)
	if !ok {
		return nil
	}
	return opt.Value("name")
}

func simplifyDate(v any) any {
	date, ok := notion.AsObject(v)
	if !ok {
		return nil
	}
	return map[string]any{
		"start": date.Value("start"),
		"end":   date.Value("end"),
	}
}

func userName(user notion.Object) any {
	if user.Has("name") {
		return user.Value("name")
	}
	return user.Value("id")
}

// simplifyComputed reads formula results, which nest the value under their own type.
func simplifyComputed(v any) any {
	result, ok := notion.AsObject(v)
	if !ok {
		return nil
	}
	typ := result.Type()
	if typ == "date" {
		return simplifyDate(result.Value("date"))
	}
	return result.Value(typ)
}

func simplifyRollup(v any) any {
	rollup, ok := notion.AsObject(v)
	if !ok {
		return nil
	}
	if rollup.Type() != "array" {
		return simplifyComputed(rollup)
	}
	items := []any{}
	for _, item := range notion.Objects(rollup.Value("array")) {
		items = append(items, SimplifyProperty(item))
	}
	return items
}

func simplifyUniqueID(v any) any {
	id, ok := notion.AsObject(v)
	if !ok || !id.Has("number") {
		return nil
	}
	if prefix := id.Str("prefix"); prefix != "" {
		return fmt.Sprintf("%s-%s", prefix, id.Str("number"))
	}
	return id.Value("number")
}

// fileURL resolves a hosted-or-external file reference: external.url for
// external files, otherwise file.url. A direct url member wins over both.
func fileURL(f notion.Object) any {
	if f.Has("url") {
		return f.Value("url")
	}
	if f.Type() == "external" {
		return f.Map("external").Value("url")
	}
	return f.Map("file").Value("url")
}
