package cli

import (
	"errors"
	"fmt"

	"github.com/lox/notionctl/internal/api"
	"github.com/lox/notionctl/internal/config"
	"github.com/lox/notionctl/internal/output"
)

// RequireAPIClient builds a client from the effective config. A missing token
// is reported as a usage error.
func RequireAPIClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.API.Token == "" {
		return nil, &output.UserError{
			Message: fmt.Sprintf("API token is not configured. Run 'notion auth setup' or set %s.", config.EnvToken),
		}
	}

	client, err := api.NewClient(cfg.API, cfg.API.Token)
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}
	return client, nil
}

// NotFound turns an API 404 for ref into a usage error naming the reference.
// Other errors are returned unchanged.
func NotFound(kind, ref string, err error) error {
	if !api.IsNotFound(err) {
		return err
	}
	var apiErr *api.Error
	errors.As(err, &apiErr)
	return &output.UserError{
		Message: fmt.Sprintf("%s %q not found or not shared with this integration: %s", kind, ref, apiErr.Message),
	}
}
