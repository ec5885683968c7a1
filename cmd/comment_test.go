package cmd

import (
	"strings"
	"testing"
)

func TestPageCommentsJSON(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := PageCommentsCmd{Page: testPageID, JSON: true}
	if err := cmd.Run(run.ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "{\n" +
		"  \"comments\": [\n" +
		"    {\n" +
		"      \"id\": \"c1\",\n" +
		"      \"discussion_id\": \"d1\",\n" +
		"      \"created_time\": \"2024-03-03T09:00:00.000Z\",\n" +
		"      \"created_by\": \"u1\",\n" +
		"      \"content\": \"Looks good\"\n" +
		"    }\n" +
		"  ]\n" +
		"}\n"
	if got := run.stdout.String(); got != want {
		t.Fatalf("stdout mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestPageCommentsTextByName(t *testing.T) {
	startFakeNotion(t)
	run := newTestRun(t)

	cmd := PageCommentsCmd{Page: "Weekly sync"}
	if err := cmd.Run(run.ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := run.stdout.String()
	for _, want := range []string{"Comments", "u1", "Looks good"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
