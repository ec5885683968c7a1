package output

import "github.com/lox/notionctl/internal/notion"

// SearchJSON summarises mixed page and database search results.
func SearchJSON(results []notion.Object) SearchResultList {
	out := SearchResultList{Results: make([]SearchResult, 0, len(results))}
	for _, obj := range results {
		title := PageTitle(obj)
		if obj.Str("object") == "database" {
			title = DatabaseTitle(obj)
		}
		out.Results = append(out.Results, SearchResult{
			ID:    obj.Str("id"),
			Type:  obj.Str("object"),
			Title: title,
			URL:   obj.Str("url"),
		})
	}
	return out
}

func SearchTable(results []notion.Object) *Table {
	t := NewTable("Search Results",
		Column{Header: "Type", Color: ColorYellow},
		Column{Header: "Title", Color: ColorCyan},
		Column{Header: "ID", Color: ColorMagenta},
		Column{Header: "URL", Color: ColorBlue},
	)
	for _, r := range SearchJSON(results).Results {
		t.AddRow(r.Type, r.Title, r.ID, r.URL)
	}
	return t
}

func CommentsJSON(comments []notion.Object) CommentList {
	out := CommentList{Comments: make([]Comment, 0, len(comments))}
	for _, c := range comments {
		out.Comments = append(out.Comments, Comment{
			ID:           c.Str("id"),
			DiscussionID: c.Str("discussion_id"),
			CreatedTime:  c.Value("created_time"),
			CreatedBy:    FormatCell(userName(c.Map("created_by"))),
			Content:      PlainText(c.Value("rich_text")),
		})
	}
	return out
}

func CommentsTable(comments []notion.Object) *Table {
	t := NewTable("Comments",
		Column{Header: "Author", Color: ColorGreen},
		Column{Header: "Created", Color: ColorWhite},
		Column{Header: "Content", Color: ColorDefault},
	)
	for _, c := range CommentsJSON(comments).Comments {
		t.AddRow(c.CreatedBy, FormatCell(c.CreatedTime), c.Content)
	}
	return t
}
