package cmd

import (
	"context"

	"github.com/lox/notionctl/internal/cli"
)

type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	Type  string `help:"Object type to return" enum:"all,page,database" default:"all"`
	Limit int    `help:"Maximum number of results" short:"l" default:"20"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *SearchCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	objectType := c.Type
	if objectType == "all" {
		objectType = ""
	}
	return runSearch(ctx, c.Query, objectType, c.Limit)
}

func runSearch(ctx *Context, query, objectType string, limit int) error {
	r := ctx.renderer()

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	results, err := client.Search(context.Background(), query, objectType, limit)
	if err != nil {
		return fail(r, err)
	}
	return r.Search(results)
}
