package output

import (
	"github.com/lox/notionctl/internal/notion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DisplayedColumns picks the entry columns to show. Requested names missing
// from the schema are dropped; with no request every schema property is shown,
// title property first.
func DisplayedColumns(schema notion.Properties, requested []string) []string {
	if len(requested) > 0 {
		cols := make([]string, 0, len(requested))
		for _, name := range requested {
			if _, ok := schema.Get(name); ok {
				cols = append(cols, name)
			}
		}
		return cols
	}

	var title []string
	var rest []string
	for _, name := range schema.Names() {
		prop, _ := schema.Get(name)
		if prop.Type() == "title" {
			title = append(title, name)
		} else {
			rest = append(rest, name)
		}
	}
	return append(title, rest...)
}

// EntryValues projects an entry's simplified properties onto the displayed
// columns. Columns the entry lacks are skipped.
func EntryValues(entry notion.Object, displayed []string) *orderedmap.OrderedMap[string, any] {
	props := notion.PropertiesOf(entry)
	values := orderedmap.New[string, any]()
	for _, name := range displayed {
		prop, ok := props.Get(name)
		if !ok {
			continue
		}
		values.Set(name, SimplifyProperty(prop))
	}
	return values
}

func EntriesJSON(entries []notion.Object, displayed []string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Entry{
			ID:         entry.Str("id"),
			URL:        entry.Str("url"),
			Properties: EntryValues(entry, displayed),
		})
	}
	return out
}

func EntriesTable(title string, entries []notion.Object, displayed []string) *Table {
	if title == "" {
		title = "Database Entries"
	}
	columns := make([]Column, 0, len(displayed))
	for i, name := range displayed {
		color := ColorDefault
		if i == 0 {
			color = ColorCyan
		}
		columns = append(columns, Column{Header: name, Color: color})
	}

	t := NewTable(title, columns...)
	for _, entry := range entries {
		values := EntryValues(entry, displayed)
		row := make([]string, len(displayed))
		for i, name := range displayed {
			v, _ := values.Get(name)
			row[i] = FormatCell(v)
		}
		t.AddRow(row...)
	}
	return t
}
