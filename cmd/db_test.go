package cmd

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lox/notionctl/internal/notion"
)

func TestDBListJSON(t *testing.T) {
	fake := startFakeNotion(t)
	run := newTestRun(t)

	cmd := DBListCmd{Query: "tasks", Limit: 10, JSON: true}
	if err := cmd.Run(run.ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got struct {
		Databases []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"databases"`
	}
	run.decodeJSON(t, &got)
	if len(got.Databases) != 1 || got.Databases[0].Title != "Tasks" || got.Databases[0].ID != testDatabaseID {
		t.Fatalf("unexpected databases: %+v", got)
	}

	if len(fake.searches) != 1 || fake.searches[0]["query"] != "tasks" {
		t.Fatalf("unexpected search payloads: %#v", fake.searches)
	}
}

func TestDBSchemaText(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := DBSchemaCmd{Database: testDatabaseID}
	if err := cmd.Run(run.ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := run.stdout.String()
	for _, want := range []string{"Schema: Tasks", "Status", "Options: Todo, Done", "Format: number"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDBQueryColumnsAndFilter(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := DBQueryCmd{
		Database: "Tasks",
		Columns:  []string{"Name", " Points", "Unknown"},
		Filter:   "Status=todo",
		Limit:    1,
		JSON:     true,
	}
	if err := cmd.Run(run.ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got []struct {
		ID         string         `json:"id"`
		Properties map[string]any `json:"properties"`
	}
	run.decodeJSON(t, &got)

	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1: %+v", len(got), got)
	}
	want := map[string]any{"Name": "Fix bug", "Points": float64(5)}
	if diff := cmp.Diff(want, got[0].Properties); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}

	// Column order follows the request, not the map.
	if strings.Index(run.stdout.String(), `"Name"`) > strings.Index(run.stdout.String(), `"Points"`) {
		t.Fatalf("column order not preserved:\n%s", run.stdout.String())
	}
}

func TestDBQueryDefaultColumnsText(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := DBQueryCmd{Database: testDatabaseID, Limit: 50}
	if err := cmd.Run(run.ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := run.stdout.String()
	for _, want := range []string{"Tasks", "Write docs", "Fix bug", "Release"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	header := strings.Split(out, "\n")[2]
	if strings.Index(header, "Name") > strings.Index(header, "Status") {
		t.Fatalf("title column should come first: %q", header)
	}
}

func TestDBQueryInvalidFilterIsUsageError(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := DBQueryCmd{Database: testDatabaseID, Filter: "Status", JSON: true}
	if err := cmd.Run(run.ctx); err == nil {
		t.Fatal("expected filter error")
	}
	if !run.exited || run.code != 2 {
		t.Fatalf("exit = %v/%d, want 2", run.exited, run.code)
	}
	if !strings.HasPrefix(run.stderr.String(), "Error: invalid filter clause") {
		t.Fatalf("stderr = %q", run.stderr.String())
	}
}

func TestDBSchemaUnknownDatabaseIsUsageError(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := DBSchemaCmd{Database: "99999999999999999999999999999999"}
	if err := cmd.Run(run.ctx); err == nil {
		t.Fatal("expected API error")
	}
	if run.code != 2 {
		t.Fatalf("exit code = %d, want 2", run.code)
	}
	out := run.stdout.String()
	if !strings.Contains(out, `❌ database "99999999999999999999999999999999" not found`) || !strings.Contains(out, "Could not find") {
		t.Fatalf("stdout = %q", run.stdout.String())
	}
}

func TestUnknownProperties(t *testing.T) {
	t.Parallel()

	schema := notion.NewProperties()
	schema.Set("Status", notion.Object{"type": "select"})
	schema.Set("Name", notion.Object{"type": "title"})

	got := unknownProperties(schema, []string{"status", "Owner", "NAME", "Due"})
	if diff := cmp.Diff([]string{"Owner", "Due"}, got); diff != "" {
		t.Fatalf("unknownProperties mismatch (-want +got):\n%s", diff)
	}
	if got := unknownProperties(schema, nil); got != nil {
		t.Fatalf("unknownProperties(nil) = %#v", got)
	}
}
