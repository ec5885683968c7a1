package cli

import (
	"errors"
	"testing"

	"github.com/lox/notionctl/internal/api"
	"github.com/lox/notionctl/internal/output"
)

func TestRequireAPIClientWithoutTokenIsUserError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTION_API_TOKEN", "")

	_, err := RequireAPIClient()
	var userErr *output.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected UserError, got %v", err)
	}
	if output.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", output.ExitCode(err))
	}
}

func TestRequireAPIClientUsesEnvToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTION_API_TOKEN", "env-token")

	client, err := RequireAPIClient()
	if err != nil {
		t.Fatalf("require client: %v", err)
	}
	if client == nil {
		t.Fatal("client is nil")
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	missing := &api.Error{Method: "GET", Path: "/pages/x", StatusCode: 404, Message: "Could not find page"}
	err := NotFound("page", "Weekly sync", missing)
	if output.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", output.ExitCode(err))
	}
	want := `page "Weekly sync" not found or not shared with this integration: Could not find page`
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}

	other := &api.Error{StatusCode: 500, Message: "boom"}
	if got := NotFound("page", "x", other); got != other {
		t.Fatalf("non-404 error changed: %v", got)
	}
	if got := NotFound("page", "x", nil); got != nil {
		t.Fatalf("nil error changed: %v", got)
	}
}
