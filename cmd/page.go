package cmd

import (
	"context"

	"github.com/lox/notionctl/internal/cli"
)

type PageCmd struct {
	List     PageListCmd     `cmd:"" help:"List pages"`
	View     PageViewCmd     `cmd:"" help:"View a page"`
	Property PagePropertyCmd `cmd:"" help:"Show one property of a page"`
	Comments PageCommentsCmd `cmd:"" help:"List comments on a page"`
}

type PageListCmd struct {
	Query string `help:"Filter pages by name" short:"q"`
	Limit int    `help:"Maximum number of results" short:"l" default:"20"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *PageListCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runPageList(ctx, c.Query, c.Limit)
}

func runPageList(ctx *Context, query string, limit int) error {
	r := ctx.renderer()

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	pages, err := client.Search(context.Background(), query, "page", limit)
	if err != nil {
		return fail(r, err)
	}
	return r.Pages(pages)
}

type PageViewCmd struct {
	Page      string `arg:"" help:"Page URL, name, or ID"`
	Depth     int    `help:"Levels of nested blocks to fetch (0 for all)" default:"3"`
	JSON      bool   `help:"Output as JSON" short:"j"`
	Raw       bool   `help:"Print plain text without markdown styling" short:"r"`
	RawObject bool   `help:"Print the page object itself, cleaned of API bookkeeping, with its blocks" name:"raw-object"`
}

func (c *PageViewCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runPageView(ctx, pageViewOptions{
		Page:      c.Page,
		Depth:     c.Depth,
		Raw:       c.Raw,
		RawObject: c.RawObject,
	})
}

type pageViewOptions struct {
	Page      string
	Depth     int
	Raw       bool
	RawObject bool
}

func runPageView(ctx *Context, opts pageViewOptions) error {
	r := ctx.rendererWith(!opts.Raw && !opts.RawObject)

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	bgCtx := context.Background()
	pageID, err := cli.ResolvePageID(bgCtx, client, opts.Page)
	if err != nil {
		return fail(r, err)
	}

	p, err := client.RetrievePage(bgCtx, pageID)
	if err != nil {
		return fail(r, cli.NotFound("page", opts.Page, err))
	}

	blocks, err := client.BlockTree(bgCtx, pageID, opts.Depth)
	if err != nil {
		return fail(r, err)
	}

	if opts.RawObject {
		p["blocks"] = blocks
		return r.Object(p)
	}
	return r.Page(p, blocks)
}
