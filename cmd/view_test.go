package cmd

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lox/notionctl/internal/config"
)

func TestViewSaveListRunRemove(t *testing.T) {
	startFakeNotion(t)

	save := newTestRun(t)
	saveCmd := ViewSaveCmd{
		Name:        "todo",
		Database:    "Tasks",
		Columns:     []string{"Name", "Status"},
		Filter:      "Status!=Done",
		Description: "Open work",
		JSON:        true,
	}
	if err := saveCmd.Run(save.ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := "{\n  \"success\": true,\n  \"database\": \"Tasks\",\n  \"replaced\": false,\n  \"view\": \"todo\"\n}\n"
	if got := save.stdout.String(); got != want {
		t.Fatalf("save output = %q, want %q", got, want)
	}

	views, err := config.LoadViews()
	if err != nil {
		t.Fatalf("load views: %v", err)
	}
	wantViews := []config.View{{
		Name:        "todo",
		Database:    "Tasks",
		Columns:     []string{"Name", "Status"},
		Filter:      "Status!=Done",
		Description: "Open work",
	}}
	if diff := cmp.Diff(wantViews, views.Views); diff != "" {
		t.Fatalf("stored views mismatch (-want +got):\n%s", diff)
	}

	list := newTestRun(t)
	if err := (&ViewListCmd{}).Run(list.ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Saved Views", "todo", "Name, Status", "Status!=Done", "All"} {
		if !strings.Contains(list.stdout.String(), want) {
			t.Fatalf("list output missing %q:\n%s", want, list.stdout.String())
		}
	}

	run := newTestRun(t)
	if err := (&ViewRunCmd{Name: "TODO", JSON: true}).Run(run.ctx); err != nil {
		t.Fatalf("run view: %v", err)
	}
	var entries []struct {
		ID         string         `json:"id"`
		Properties map[string]any `json:"properties"`
	}
	run.decodeJSON(t, &entries)
	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
		if len(e.Properties) != 2 {
			t.Fatalf("entry %s properties = %#v", e.ID, e.Properties)
		}
	}
	if diff := cmp.Diff([]string{"e2", "e3"}, ids); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	remove := newTestRun(t)
	if err := (&ViewRemoveCmd{Name: "todo"}).Run(remove.ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := remove.stdout.String(); got != "view: todo\n" {
		t.Fatalf("remove output = %q", got)
	}

	views, err = config.LoadViews()
	if err != nil {
		t.Fatalf("load views: %v", err)
	}
	if len(views.Views) != 0 {
		t.Fatalf("views after remove = %#v", views.Views)
	}
}

func TestViewSaveReplacesExisting(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	first := newTestRun(t)
	if err := (&ViewSaveCmd{Name: "mine", Database: "Tasks", Limit: 5}).Run(first.ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := newTestRun(t)
	if err := (&ViewSaveCmd{Name: "mine", Database: "Bugs"}).Run(second.ctx); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if !strings.Contains(second.stdout.String(), "replaced: true") {
		t.Fatalf("stdout = %q", second.stdout.String())
	}

	views, err := config.LoadViews()
	if err != nil {
		t.Fatalf("load views: %v", err)
	}
	if len(views.Views) != 1 || views.Views[0].Database != "Bugs" || views.Views[0].Limit != 0 {
		t.Fatalf("views = %#v", views.Views)
	}
}

func TestViewSaveRejectsInvalidFilter(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	run := newTestRun(t)
	err := (&ViewSaveCmd{Name: "bad", Database: "Tasks", Filter: "Status"}).Run(run.ctx)
	if err == nil {
		t.Fatal("expected filter error")
	}
	if run.code != 2 {
		t.Fatalf("exit code = %d, want 2", run.code)
	}
}

func TestViewRunAndRemoveUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	run := newTestRun(t)
	if err := (&ViewRunCmd{Name: "ghost", JSON: true}).Run(run.ctx); err == nil {
		t.Fatal("expected unknown view error")
	}
	if run.code != 2 || !strings.Contains(run.stderr.String(), "view 'ghost' not found") {
		t.Fatalf("exit = %d, stderr = %q", run.code, run.stderr.String())
	}

	remove := newTestRun(t)
	if err := (&ViewRemoveCmd{Name: "ghost"}).Run(remove.ctx); err == nil {
		t.Fatal("expected unknown view error")
	}
	if remove.code != 2 {
		t.Fatalf("exit code = %d, want 2", remove.code)
	}
}
