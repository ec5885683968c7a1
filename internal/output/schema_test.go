package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lox/notionctl/internal/notion"
)

func schemaFixture() notion.Object {
	var options []any
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		options = append(options, map[string]any{"name": name, "id": "id-" + name, "color": "blue"})
	}

	props := notion.NewProperties()
	props.Set("Name", notion.Object{"id": "title", "type": "title", "title": map[string]any{}})
	props.Set("Stage", notion.Object{"id": "s1", "type": "select", "select": map[string]any{"options": options}})
	props.Set("Tags", notion.Object{"id": "t1", "type": "multi_select", "multi_select": map[string]any{"options": []any{}}})
	props.Set("Cost", notion.Object{"id": "c1", "type": "number", "number": map[string]any{"format": "dollar"}})
	props.Set("Score", notion.Object{"id": "f1", "type": "formula", "formula": map[string]any{
		"expression": strings.Repeat("x", 60),
	}})
	props.Set("Parent", notion.Object{"id": "r1", "type": "relation", "relation": map[string]any{
		"database_id":   "db-2",
		"dual_property": map[string]any{"synced_property_name": "Children"},
	}})
	props.Set("Total", notion.Object{"id": "ru1", "type": "rollup", "rollup": map[string]any{
		"relation_property_name": "Parent",
		"relation_property_id":   "r1",
		"rollup_property_name":   "Cost",
		"rollup_property_id":     "c1",
		"function":               "sum",
	}})

	return notion.Object{
		"id":         "db-1",
		"url":        "https://notion.so/db-1",
		"title":      []any{span("Projects", nil)},
		"properties": props,
	}
}

func TestSchemaTableSummarizes(t *testing.T) {
	t.Parallel()

	table := SchemaTable(schemaFixture())
	if table.Title != "Schema: Projects" {
		t.Fatalf("title = %q", table.Title)
	}

	want := [][]string{
		{"Name", "title", ""},
		{"Stage", "select", "Options: a, b, c, d, e (+2 more)"},
		{"Tags", "multi_select", "Options: (none)"},
		{"Cost", "number", "Format: dollar"},
		{"Score", "formula", "Formula: " + strings.Repeat("x", 50) + "..."},
		{"Parent", "relation", "Database: db-2 (synced: Children)"},
		{"Total", "rollup", "Rollup: Parent (r1) → Cost (c1), sum"},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaJSONKeepsEverything(t *testing.T) {
	t.Parallel()

	schema := SchemaJSON(schemaFixture())
	if schema.Title != "Projects" || schema.ID != "db-1" {
		t.Fatalf("schema header = %q/%q", schema.ID, schema.Title)
	}

	byName := map[string]PropertySchema{}
	for _, ps := range schema.Properties {
		byName[ps.Name] = ps
	}

	if got := len(byName["Stage"].Options); got != 7 {
		t.Fatalf("Stage options = %d, want 7", got)
	}
	if got := *byName["Score"].Expression; got != strings.Repeat("x", 60) {
		t.Fatalf("expression truncated in JSON: %q", got)
	}
	if diff := cmp.Diff(&RelationConfig{DatabaseID: "db-2", SyncedPropertyName: "Children"}, byName["Parent"].Relation); diff != "" {
		t.Fatalf("relation mismatch (-want +got):\n%s", diff)
	}
	if byName["Total"].Rollup.Function != "sum" {
		t.Fatalf("rollup = %#v", byName["Total"].Rollup)
	}
}

func TestSchemaJSONOmitsUnusedConfig(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(SchemaJSON(schemaFixture()).Properties[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"name":"Name","id":"title","type":"title"}`; string(got) != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("héllo", 5); got != "héllo" {
		t.Fatalf("truncate at limit = %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "héllo..." {
		t.Fatalf("truncate over limit = %q", got)
	}
}

func TestSchemaJSONKeepsEmptyOptionLists(t *testing.T) {
	t.Parallel()

	db := notion.Object{"properties": map[string]any{
		"Stage":  map[string]any{"id": "s", "type": "status", "status": map[string]any{"options": []any{}}},
		"Tags":   map[string]any{"id": "t", "type": "multi_select", "multi_select": map[string]any{}},
		"Points": map[string]any{"id": "p", "type": "number", "number": map[string]any{}},
	}}

	got, err := notion.Marshal(SchemaJSON(db).Properties)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"name":"Points","id":"p","type":"number"},` +
		`{"name":"Stage","id":"s","type":"status","options":[]},` +
		`{"name":"Tags","id":"t","type":"multi_select","options":[]}]`
	if string(got) != want {
		t.Fatalf("schema properties = %s, want %s", got, want)
	}
}
