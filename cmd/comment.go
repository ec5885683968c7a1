package cmd

import (
	"context"

	"github.com/lox/notionctl/internal/cli"
)

type PageCommentsCmd struct {
	Page  string `arg:"" help:"Page URL, name, or ID"`
	Limit int    `help:"Maximum number of comments (0 for all)" short:"l" default:"0"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *PageCommentsCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runPageComments(ctx, c.Page, c.Limit)
}

func runPageComments(ctx *Context, page string, limit int) error {
	r := ctx.renderer()

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	bgCtx := context.Background()
	pageID, err := cli.ResolvePageID(bgCtx, client, page)
	if err != nil {
		return fail(r, err)
	}

	comments, err := client.ListComments(bgCtx, pageID, limit)
	if err != nil {
		return fail(r, err)
	}
	return r.Comments(comments)
}
