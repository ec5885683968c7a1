package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/notionctl/internal/api"
	"github.com/lox/notionctl/internal/cli"
	"github.com/lox/notionctl/internal/notion"
	"github.com/lox/notionctl/internal/output"
)

type DBCmd struct {
	List   DBListCmd   `cmd:"" help:"List databases shared with the integration"`
	Schema DBSchemaCmd `cmd:"" help:"Show a database's properties"`
	Query  DBQueryCmd  `cmd:"" help:"Query database entries"`
}

type DBListCmd struct {
	Query string `help:"Filter databases by name" short:"q"`
	Limit int    `help:"Maximum number of results" short:"l" default:"20"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *DBListCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	dbs, err := client.Search(context.Background(), c.Query, "database", c.Limit)
	if err != nil {
		return fail(r, err)
	}
	return r.Databases(dbs)
}

type DBSchemaCmd struct {
	Database string `arg:"" help:"Database URL, name, or ID"`
	JSON     bool   `help:"Output as JSON" short:"j"`
}

func (c *DBSchemaCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	db, err := retrieveDatabase(context.Background(), client, c.Database)
	if err != nil {
		return fail(r, err)
	}
	return r.Schema(db)
}

type DBQueryCmd struct {
	Database string   `arg:"" help:"Database URL, name, or ID"`
	Columns  []string `help:"Properties to show (comma-separated)" sep:","`
	Filter   string   `help:"Filter entries, e.g. 'Status!=Done,Tags~cli'" short:"f"`
	Limit    int      `help:"Maximum number of entries" short:"l" default:"50"`
	JSON     bool     `help:"Output as JSON" short:"j"`
}

func (c *DBQueryCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runQuery(ctx, queryOptions{
		Database: c.Database,
		Columns:  c.Columns,
		Filter:   c.Filter,
		Limit:    c.Limit,
	})
}

type queryOptions struct {
	Database string
	Columns  []string
	Filter   string
	Limit    int
	// Title overrides the database title in the table heading.
	Title string
}

func runQuery(ctx *Context, opts queryOptions) error {
	r := ctx.renderer()

	filter, err := cli.ParseFilter(opts.Filter)
	if err != nil {
		return fail(r, err)
	}

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	bgCtx := context.Background()
	db, err := retrieveDatabase(bgCtx, client, opts.Database)
	if err != nil {
		return fail(r, err)
	}

	for _, name := range unknownProperties(notion.PropertiesOf(db), filter.Properties()) {
		output.PrintWarning(fmt.Sprintf("Filter property %q is not in this database and matches as empty", name))
	}

	// Filtering happens client-side, so the limit applies after it.
	fetchLimit := opts.Limit
	if !filter.Empty() {
		fetchLimit = 0
	}
	entries, err := client.QueryDatabase(bgCtx, db.Str("id"), fetchLimit)
	if err != nil {
		return fail(r, err)
	}

	entries = filterEntries(entries, filter, opts.Limit)
	columns := output.DisplayedColumns(notion.PropertiesOf(db), trimColumns(opts.Columns))

	title := opts.Title
	if title == "" {
		title = output.DatabaseTitle(db)
	}
	return r.Entries(title, entries, columns)
}

func filterEntries(entries []notion.Object, filter cli.Filter, limit int) []notion.Object {
	if filter.Empty() {
		return entries
	}
	out := make([]notion.Object, 0, len(entries))
	for _, entry := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		if filter.Match(output.SimplifyProperties(notion.PropertiesOf(entry))) {
			out = append(out, entry)
		}
	}
	return out
}

// unknownProperties returns the names missing from schema, compared
// case-insensitively.
func unknownProperties(schema notion.Properties, names []string) []string {
	var missing []string
	for _, name := range names {
		found := false
		for _, known := range schema.Names() {
			if strings.EqualFold(known, name) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return missing
}

func trimColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if col = strings.TrimSpace(col); col != "" {
			out = append(out, col)
		}
	}
	return out
}

func retrieveDatabase(ctx context.Context, client *api.Client, ref string) (notion.Object, error) {
	id, err := cli.ResolveDatabaseID(ctx, client, ref)
	if err != nil {
		return nil, err
	}
	db, err := client.RetrieveDatabase(ctx, id)
	if err != nil {
		return nil, cli.NotFound("database", ref, err)
	}
	return db, nil
}
