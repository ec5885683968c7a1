package output

import (
	"strings"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestFormatCell(t *testing.T) {
	t.Parallel()

	om := orderedmap.New[string, any]()
	om.Set("b", "1")
	om.Set("a", true)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string", value: "x", want: "x"},
		{name: "true", value: true, want: "✓"},
		{name: "false", value: false, want: "✗"},
		{name: "integral float", value: float64(3), want: "3"},
		{name: "fraction", value: 2.5, want: "2.5"},
		{name: "list skips blanks", value: []any{"a", nil, "b"}, want: "a, b"},
		{name: "open date", value: map[string]any{"start": "2024-01-01", "end": nil}, want: "2024-01-01"},
		{name: "date range", value: map[string]any{"start": "2024-01-01", "end": "2024-01-05"}, want: "2024-01-01 → 2024-01-05"},
		{name: "file", value: map[string]any{"name": "a.pdf", "url": "https://f/a.pdf"}, want: "a.pdf (https://f/a.pdf)"},
		{name: "other map", value: map[string]any{"z": 1.0, "label": "Go"}, want: "label=Go, z=1"},
		{name: "ordered map", value: om, want: "b=1, a=✓"},
		{name: "int", value: 7, want: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatCell(tt.value); got != tt.want {
				t.Fatalf("FormatCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTableRender(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Things", Column{Header: "Name", Color: ColorCyan}, Column{Header: "Count"})
	tbl.AddRow("widgets", "3")
	tbl.AddRow("gadgets", "12")

	out := tbl.Render()
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "Things") {
		t.Fatalf("first line = %q, want title", lines[0])
	}
	for _, want := range []string{"Name", "Count", "widgets", "gadgets", "12"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}
