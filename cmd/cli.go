package cmd

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/notionctl/internal/output"
	"golang.org/x/term"
)

type CLI struct {
	Version kong.VersionFlag `help:"Show version" short:"v"`

	Search SearchCmd `cmd:"" help:"Search pages and databases"`
	DB     DBCmd     `cmd:"" name:"db" help:"List, describe and query databases"`
	Page   PageCmd   `cmd:"" help:"List and view pages"`
	View   ViewCmd   `cmd:"" help:"Manage saved database views"`
	Auth   AuthCmd   `cmd:"" help:"Manage the Notion API token"`
}

// Context carries per-invocation settings into command handlers. Zero values
// write to the process streams and exit the process on failure.
type Context struct {
	JSON bool

	Stdout io.Writer
	Stderr io.Writer
	Exit   func(code int)
}

func (ctx *Context) stdout() io.Writer {
	if ctx.Stdout != nil {
		return ctx.Stdout
	}
	return os.Stdout
}

// renderer builds the output mode for this invocation.
func (ctx *Context) renderer() output.Renderer {
	return ctx.rendererWith(false)
}

// rendererWith also enables markdown page rendering when requested and
// stdout is a terminal.
func (ctx *Context) rendererWith(markdown bool) output.Renderer {
	if markdown && (ctx.Stdout != nil || !term.IsTerminal(int(os.Stdout.Fd()))) {
		markdown = false
	}
	return output.New(output.Options{
		JSON:     ctx.JSON,
		Markdown: markdown,
		Stdout:   ctx.Stdout,
		Stderr:   ctx.Stderr,
		Exit:     ctx.Exit,
	})
}

// fail reports err through r and terminates. The error is returned for
// callers running with a non-exiting Exit.
func fail(r output.Renderer, err error) error {
	r.Error(err.Error(), output.ExitCode(err))
	return err
}
