package output

import (
	"strconv"
	"strings"
)

func ViewsJSON(views []SavedView) ViewList {
	out := ViewList{Views: make([]ViewSummary, 0, len(views))}
	for _, v := range views {
		summary := ViewSummary{
			Name:     v.Name,
			Database: v.Database,
		}
		if len(v.Columns) > 0 {
			summary.Columns = v.Columns
		}
		if v.Filter != "" {
			summary.Filter = ptr(v.Filter)
		}
		if v.Limit > 0 {
			summary.Limit = ptr(v.Limit)
		}
		if v.Description != "" {
			summary.Description = ptr(v.Description)
		}
		out.Views = append(out.Views, summary)
	}
	return out
}

func ViewsTable(views []SavedView) *Table {
	t := NewTable("Saved Views",
		Column{Header: "Name", Color: ColorCyan},
		Column{Header: "Database", Color: ColorGreen},
		Column{Header: "Columns", Color: ColorBlue},
		Column{Header: "Filter", Color: ColorMagenta},
		Column{Header: "Limit", Color: ColorWhite},
	)
	for _, v := range views {
		columns := "All"
		if len(v.Columns) > 0 {
			columns = strings.Join(v.Columns, ", ")
		}
		filter := "None"
		if v.Filter != "" {
			filter = v.Filter
		}
		limit := "All"
		if v.Limit > 0 {
			limit = strconv.Itoa(v.Limit)
		}
		t.AddRow(v.Name, v.Database, columns, filter, limit)
	}
	return t
}
