package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Column colors, by ANSI index.
const (
	ColorDefault = ""
	ColorBlue    = "4"
	ColorMagenta = "5"
	ColorCyan    = "6"
	ColorWhite   = "7"
	ColorGreen   = "2"
	ColorYellow  = "3"
)

// Table is a renderable table: a title, styled column headers and string rows.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
}

type Column struct {
	Header string
	Color  string
}

func NewTable(title string, columns ...Column) *Table {
	return &Table{Title: title, Columns: columns}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render draws the table with rounded borders and per-column colors.
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyles := make([]lipgloss.Style, len(t.Columns))
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
		style := lipgloss.NewStyle().Padding(0, 1)
		if col.Color != ColorDefault {
			style = style.Foreground(lipgloss.Color(col.Color))
		}
		cellStyles[i] = style
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < len(cellStyles) {
				return cellStyles[col]
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)

	for _, row := range t.Rows {
		tbl.Row(row...)
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Italic(true).Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.String())
	return b.String()
}

// FormatCell renders a simplified property value as a single table cell.
func FormatCell(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "✓"
		}
		return "✗"
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if s := FormatCell(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if typed["start"] != nil || typed["end"] != nil {
			return formatDateRange(typed)
		}
		if name, ok := typed["name"]; ok {
			if u := FormatCell(typed["url"]); u != "" {
				return fmt.Sprintf("%s (%s)", FormatCell(name), u)
			}
			return FormatCell(name)
		}
		return formatMapInline(typed)
	case *orderedmap.OrderedMap[string, any]:
		parts := []string{}
		for pair := typed.Oldest(); pair != nil; pair = pair.Next() {
			parts = append(parts, pair.Key+"="+FormatCell(pair.Value))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(typed)
	}
}

func formatDateRange(date map[string]any) string {
	start := FormatCell(date["start"])
	end := FormatCell(date["end"])
	if end == "" {
		return start
	}
	return start + " → " + end
}

func formatMapInline(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+FormatCell(m[k]))
	}
	return strings.Join(parts, ", ")
}
