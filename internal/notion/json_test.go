package notion

import (
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestMarshalKeepsOrderAndHTMLCharacters(t *testing.T) {
	t.Parallel()

	inner := orderedmap.New[string, any]()
	inner.Set("z", "a < b")
	inner.Set("a", "c & d")

	outer := orderedmap.New[string, any]()
	outer.Set("title", "R&D <core>")
	outer.Set("nested", []any{inner})
	outer.Set("empty", (*orderedmap.OrderedMap[string, any])(nil))

	got, err := Marshal(outer)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"title":"R&D <core>","nested":[{"z":"a < b","a":"c & d"}],"empty":null}`
	if string(got) != want {
		t.Fatalf("Marshal() = %s, want %s", got, want)
	}
}

func TestPropertiesMarshalJSONWritesLiterally(t *testing.T) {
	t.Parallel()

	props := NewProperties()
	props.Set("Team", Object{"type": "rich_text", "rich_text": "R&D"})
	props.Set("Area", Object{"type": "select", "select": "<ops>"})

	got, err := props.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"Team":{"rich_text":"R&D","type":"rich_text"},"Area":{"select":"<ops>","type":"select"}}`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}
