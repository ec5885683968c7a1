package notion

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjectAccessorsTolerateMissingAndWrongShapes(t *testing.T) {
	t.Parallel()

	obj := Object{
		"id":      "abc",
		"count":   float64(3),
		"flag":    true,
		"nested":  map[string]any{"name": "x"},
		"items":   []any{map[string]any{"a": 1}, "skip"},
		"nothing": nil,
	}

	if got := obj.Str("id"); got != "abc" {
		t.Fatalf("Str(id) = %q", got)
	}
	if got := obj.Str("count"); got != "3" {
		t.Fatalf("Str(count) = %q", got)
	}
	if got := obj.Str("nothing"); got != "" {
		t.Fatalf("Str(nothing) = %q", got)
	}
	if got := obj.Str("missing"); got != "" {
		t.Fatalf("Str(missing) = %q", got)
	}
	if !obj.Bool("flag") || obj.Bool("missing") {
		t.Fatal("Bool mismatch")
	}
	if obj.Map("nested").Str("name") != "x" {
		t.Fatalf("Map(nested) = %#v", obj.Map("nested"))
	}
	if obj.Map("id") != nil {
		t.Fatal("Map on a string should be nil")
	}
	if got := Objects(obj.Value("items")); len(got) != 1 {
		t.Fatalf("Objects(items) len = %d, want 1", len(got))
	}

	var nilObj Object
	if nilObj.Str("x") != "" || nilObj.Has("x") || nilObj.Map("x") != nil {
		t.Fatal("nil Object accessors should return zero values")
	}
}

func TestChildrenNeverNil(t *testing.T) {
	t.Parallel()

	if got := Children(Object{"type": "paragraph"}); got == nil || len(got) != 0 {
		t.Fatalf("Children() = %#v, want empty slice", got)
	}

	block := Object{"children": []Object{{"type": "divider"}}}
	if got := Children(block); len(got) != 1 {
		t.Fatalf("Children() len = %d, want 1", len(got))
	}
}

func TestDecodeKeepsPropertyOrder(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"id": "page-1",
		"properties": {
			"Zeta": {"type": "checkbox", "checkbox": true},
			"Alpha": {"type": "number", "number": 2},
			"Name \"quoted\"": {"type": "title", "title": []}
		}
	}`)

	obj, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if obj.Str("id") != "page-1" {
		t.Fatalf("id = %q", obj.Str("id"))
	}

	props := PropertiesOf(obj)
	want := []string{"Zeta", "Alpha", `Name "quoted"`}
	if diff := cmp.Diff(want, props.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	zeta, ok := props.Get("Zeta")
	if !ok || !zeta.Bool("checkbox") {
		t.Fatalf("Zeta = %#v", zeta)
	}

	out, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	wantJSON := `{"Zeta":{"checkbox":true,"type":"checkbox"},"Alpha":{"number":2,"type":"number"},"Name \"quoted\"":{"title":[],"type":"title"}}`
	if string(out) != wantJSON {
		t.Fatalf("marshal = %s\nwant %s", out, wantJSON)
	}
}

func TestPropertiesOfPlainMapSortsNames(t *testing.T) {
	t.Parallel()

	obj := Object{"properties": map[string]any{
		"b": map[string]any{"type": "number"},
		"a": map[string]any{"type": "url"},
	}}

	if diff := cmp.Diff([]string{"a", "b"}, PropertiesOf(obj).Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if PropertiesOf(Object{}).Len() != 0 {
		t.Fatal("missing properties should be empty")
	}
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	data := []byte(`{"results":[{"id":"1","properties":{"B":{},"A":{}}},"junk",{"id":"2"}],"has_more":false}`)
	got, err := DecodeList(data, "results")
	if err != nil {
		t.Fatalf("DecodeList() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if diff := cmp.Diff([]string{"B", "A"}, PropertiesOf(got[0]).Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	empty, err := DecodeList([]byte(`{"object":"list"}`), "results")
	if err != nil {
		t.Fatalf("DecodeList(missing) error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("DecodeList(missing) = %#v", empty)
	}
}
