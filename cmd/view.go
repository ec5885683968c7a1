package cmd

import (
	"fmt"

	"github.com/lox/notionctl/internal/cli"
	"github.com/lox/notionctl/internal/config"
	"github.com/lox/notionctl/internal/output"
)

type ViewCmd struct {
	List   ViewListCmd   `cmd:"" help:"List saved views"`
	Save   ViewSaveCmd   `cmd:"" help:"Save a database query as a named view"`
	Remove ViewRemoveCmd `cmd:"" help:"Remove a saved view"`
	Run    ViewRunCmd    `cmd:"" help:"Run a saved view"`
}

type ViewListCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *ViewListCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	views, err := config.LoadViews()
	if err != nil {
		return fail(r, err)
	}
	return r.Views(savedViews(views))
}

type ViewSaveCmd struct {
	Name        string   `arg:"" help:"View name"`
	Database    string   `help:"Database URL, name, or ID" name:"db" required:""`
	Columns     []string `help:"Properties to show (comma-separated)" sep:","`
	Filter      string   `help:"Filter entries, e.g. 'Status!=Done,Tags~cli'" short:"f"`
	Limit       int      `help:"Maximum number of entries (0 for no limit)" short:"l"`
	Description string   `help:"What the view is for" short:"d"`
	JSON        bool     `help:"Output as JSON" short:"j"`
}

func (c *ViewSaveCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	if _, err := cli.ParseFilter(c.Filter); err != nil {
		return fail(r, err)
	}

	views, err := config.LoadViews()
	if err != nil {
		return fail(r, err)
	}

	view := config.View{
		Name:        c.Name,
		Database:    c.Database,
		Columns:     trimColumns(c.Columns),
		Filter:      c.Filter,
		Limit:       c.Limit,
		Description: c.Description,
	}
	if len(view.Columns) == 0 {
		view.Columns = nil
	}
	replaced, err := views.Upsert(view)
	if err != nil {
		return fail(r, &output.UserError{Message: err.Error()})
	}
	if err := config.SaveViews(views); err != nil {
		return fail(r, err)
	}

	message := fmt.Sprintf("Saved view '%s'", c.Name)
	if replaced {
		message = fmt.Sprintf("Updated view '%s'", c.Name)
	}
	return r.Success(message, map[string]any{
		"view":     c.Name,
		"database": c.Database,
		"replaced": replaced,
	})
}

type ViewRemoveCmd struct {
	Name string `arg:"" help:"View name"`
	JSON bool   `help:"Output as JSON" short:"j"`
}

func (c *ViewRemoveCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	views, err := config.LoadViews()
	if err != nil {
		return fail(r, err)
	}
	if !views.Remove(c.Name) {
		return fail(r, &output.UserError{Message: fmt.Sprintf("view '%s' not found", c.Name)})
	}
	if err := config.SaveViews(views); err != nil {
		return fail(r, err)
	}

	return r.Success(fmt.Sprintf("Removed view '%s'", c.Name), map[string]any{"view": c.Name})
}

type ViewRunCmd struct {
	Name  string `arg:"" help:"View name"`
	Limit int    `help:"Override the saved entry limit" short:"l"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *ViewRunCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	views, err := config.LoadViews()
	if err != nil {
		return fail(r, err)
	}
	view, ok := views.Find(c.Name)
	if !ok {
		return fail(r, &output.UserError{Message: fmt.Sprintf("view '%s' not found. Run 'notion view list' to see saved views.", c.Name)})
	}

	limit := view.Limit
	if c.Limit > 0 {
		limit = c.Limit
	}
	return runQuery(ctx, queryOptions{
		Database: view.Database,
		Columns:  view.Columns,
		Filter:   view.Filter,
		Limit:    limit,
		Title:    view.Name,
	})
}

func savedViews(views config.Views) []output.SavedView {
	out := make([]output.SavedView, 0, len(views.Views))
	for _, v := range views.Views {
		out = append(out, output.SavedView{
			Name:        v.Name,
			Database:    v.Database,
			Columns:     v.Columns,
			Filter:      v.Filter,
			Limit:       v.Limit,
			Description: v.Description,
		})
	}
	return out
}
