package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/notionctl/internal/cli"
	"github.com/lox/notionctl/internal/notion"
	"github.com/lox/notionctl/internal/output"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type PagePropertyCmd struct {
	Page string `arg:"" help:"Page URL, name, or ID"`
	Name string `arg:"" help:"Property name"`
	JSON bool   `help:"Output as JSON" short:"j"`
}

func (c *PagePropertyCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runPageProperty(ctx, c.Page, c.Name)
}

func runPageProperty(ctx *Context, page, propertyName string) error {
	r := ctx.renderer()

	propertyName = strings.TrimSpace(propertyName)
	if propertyName == "" {
		return fail(r, &output.UserError{Message: "property name is required"})
	}

	client, err := cli.RequireAPIClient()
	if err != nil {
		return fail(r, err)
	}

	bgCtx := context.Background()
	pageID, err := cli.ResolvePageID(bgCtx, client, page)
	if err != nil {
		return fail(r, err)
	}

	p, err := client.RetrievePage(bgCtx, pageID)
	if err != nil {
		return fail(r, cli.NotFound("page", page, err))
	}

	props := notion.PropertiesOf(p)
	name, prop, found := findPropertyByName(props, propertyName)
	if !found {
		available := props.Names()
		sort.Strings(available)
		err := &output.UserError{Message: fmt.Sprintf("property %q not found. Available properties: %s", propertyName, strings.Join(available, ", "))}
		return fail(r, err)
	}

	out := orderedmap.New[string, any]()
	out.Set("page_id", p.Str("id"))
	out.Set("property", name)
	out.Set("type", prop.Type())
	out.Set("value", output.SimplifyProperty(prop))
	return r.Result(out)
}

func findPropertyByName(props notion.Properties, propertyName string) (string, notion.Object, bool) {
	if prop, ok := props.Get(propertyName); ok {
		return propertyName, prop, true
	}

	for _, name := range props.Names() {
		if strings.EqualFold(name, propertyName) {
			prop, _ := props.Get(name)
			return name, prop, true
		}
	}
	return "", nil, false
}
