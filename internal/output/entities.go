package output

import (
	"strings"

	"github.com/lox/notionctl/internal/notion"
)

const untitled = "Untitled"

// DatabaseTitle resolves a database title: the first rich-text span, a
// literal string, or "Untitled".
func DatabaseTitle(db notion.Object) string {
	return resolveTitle(db.Value("title"))
}

func resolveTitle(v any) string {
	switch typed := v.(type) {
	case string:
		if typed != "" {
			return typed
		}
	case []any, []notion.Object, []map[string]any:
		spans := notion.Objects(typed)
		if len(spans) > 0 {
			if spans[0].Has("plain_text") {
				return spans[0].Str("plain_text")
			}
		}
	}
	return untitled
}

// PageTitle resolves a page title from the precomputed _title, the title-typed
// property, or a top-level title member.
func PageTitle(page notion.Object) string {
	if t, ok := page.Value("_title").(string); ok && t != "" {
		return t
	}
	props := notion.PropertiesOf(page)
	for _, name := range props.Names() {
		prop, _ := props.Get(name)
		if prop.Type() != "title" {
			continue
		}
		if t := PlainText(prop.Value("title")); t != "" {
			return t
		}
	}
	return resolveTitle(page.Value("title"))
}

func DatabasesJSON(dbs []notion.Object) DatabaseList {
	out := DatabaseList{Databases: make([]DatabaseSummary, 0, len(dbs))}
	for _, db := range dbs {
		created, edited := summaryTimes(db)
		out.Databases = append(out.Databases, DatabaseSummary{
			ID:             db.Str("id"),
			Title:          DatabaseTitle(db),
			URL:            db.Str("url"),
			CreatedTime:    created,
			LastEditedTime: edited,
		})
	}
	return out
}

func DatabasesTable(dbs []notion.Object) *Table {
	t := NewTable("Notion Databases",
		Column{Header: "Name", Color: ColorCyan},
		Column{Header: "ID", Color: ColorMagenta},
		Column{Header: "URL", Color: ColorBlue},
	)
	for _, db := range DatabasesJSON(dbs).Databases {
		t.AddRow(db.Title, db.ID, db.URL)
	}
	return t
}

func PagesJSON(pages []notion.Object) PageList {
	out := PageList{Pages: make([]PageSummary, 0, len(pages))}
	for _, page := range pages {
		out.Pages = append(out.Pages, pageSummary(page))
	}
	return out
}

func pageSummary(page notion.Object) PageSummary {
	created, edited := summaryTimes(page)
	return PageSummary{
		ID:             page.Str("id"),
		Title:          PageTitle(page),
		URL:            page.Str("url"),
		CreatedTime:    created,
		LastEditedTime: edited,
	}
}

func PagesTable(pages []notion.Object) *Table {
	t := NewTable("Notion Pages",
		Column{Header: "Name", Color: ColorCyan},
		Column{Header: "ID", Color: ColorMagenta},
		Column{Header: "URL", Color: ColorBlue},
	)
	for _, page := range PagesJSON(pages).Pages {
		t.AddRow(page.Title, page.ID, page.URL)
	}
	return t
}

// PageJSON combines page metadata, simplified properties and structured blocks.
func PageJSON(page notion.Object, blocks []notion.Object) PageDetail {
	return PageDetail{
		PageSummary: pageSummary(page),
		Properties:  SimplifyProperties(notion.PropertiesOf(page)),
		Blocks:      StructureBlocks(blocks),
	}
}

// PageText is the display form of a page: its title, then its content.
func PageText(page notion.Object, blocks []notion.Object) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(PageTitle(page))
	b.WriteString("\n")
	if body := RenderBlocksText(blocks); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}
