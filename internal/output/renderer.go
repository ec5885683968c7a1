package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lox/notionctl/internal/notion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Renderer emits command results in one output mode, chosen once per
// invocation by New.
type Renderer interface {
	Databases(dbs []notion.Object) error
	Pages(pages []notion.Object) error
	Entries(title string, entries []notion.Object, columns []string) error
	Schema(db notion.Object) error
	Views(views []SavedView) error
	Page(page notion.Object, blocks []notion.Object) error
	Search(results []notion.Object) error
	Comments(comments []notion.Object) error
	// Object emits a raw API object after CleanObject.
	Object(obj notion.Object) error

	// Result emits arbitrary data: tables, mappings or plain values.
	Result(data any) error
	// Success reports a completed action with optional data.
	Success(message string, data map[string]any) error
	// Error reports message and terminates with exitCode.
	Error(message string, exitCode int)
}

type Options struct {
	JSON bool
	// Markdown renders page content through glamour in text mode.
	Markdown bool

	Stdout io.Writer
	Stderr io.Writer
	// Exit terminates the process; defaults to os.Exit.
	Exit func(code int)
}

func New(opts Options) Renderer {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	if opts.JSON {
		return &jsonRenderer{opts: opts}
	}
	return &textRenderer{opts: opts}
}

type jsonRenderer struct {
	opts Options
}

func (r *jsonRenderer) Databases(dbs []notion.Object) error {
	return r.Result(DatabasesJSON(dbs))
}

func (r *jsonRenderer) Pages(pages []notion.Object) error {
	return r.Result(PagesJSON(pages))
}

func (r *jsonRenderer) Entries(_ string, entries []notion.Object, columns []string) error {
	return r.Result(EntriesJSON(entries, columns))
}

func (r *jsonRenderer) Schema(db notion.Object) error {
	return r.Result(SchemaJSON(db))
}

func (r *jsonRenderer) Views(views []SavedView) error {
	return r.Result(ViewsJSON(views))
}

func (r *jsonRenderer) Page(page notion.Object, blocks []notion.Object) error {
	return r.Result(PageJSON(page, blocks))
}

func (r *jsonRenderer) Search(results []notion.Object) error {
	return r.Result(SearchJSON(results))
}

func (r *jsonRenderer) Comments(comments []notion.Object) error {
	return r.Result(CommentsJSON(comments))
}

func (r *jsonRenderer) Object(obj notion.Object) error {
	return r.Result(CleanObject(obj))
}

func (r *jsonRenderer) Result(data any) error {
	return EmitJSON(r.opts.Stdout, data)
}

func (r *jsonRenderer) Success(_ string, data map[string]any) error {
	return r.Result(FormatSuccess(data))
}

func (r *jsonRenderer) Error(message string, exitCode int) {
	fmt.Fprintf(r.opts.Stderr, "Error: %s\n", message)
	_ = flush(r.opts.Stderr)
	r.opts.Exit(exitCode)
}

type textRenderer struct {
	opts Options
}

func (r *textRenderer) Databases(dbs []notion.Object) error {
	return r.Result(DatabasesTable(dbs))
}

func (r *textRenderer) Pages(pages []notion.Object) error {
	return r.Result(PagesTable(pages))
}

func (r *textRenderer) Entries(title string, entries []notion.Object, columns []string) error {
	return r.Result(EntriesTable(title, entries, columns))
}

func (r *textRenderer) Schema(db notion.Object) error {
	return r.Result(SchemaTable(db))
}

func (r *textRenderer) Views(views []SavedView) error {
	return r.Result(ViewsTable(views))
}

func (r *textRenderer) Page(page notion.Object, blocks []notion.Object) error {
	text := PageText(page, blocks)
	if r.opts.Markdown {
		md, err := NewMarkdownRenderer()
		if err != nil {
			return err
		}
		rendered, err := md.Render(text)
		if err != nil {
			return err
		}
		text = rendered + "\n"
	}
	_, err := io.WriteString(r.opts.Stdout, text)
	return err
}

func (r *textRenderer) Search(results []notion.Object) error {
	return r.Result(SearchTable(results))
}

func (r *textRenderer) Comments(comments []notion.Object) error {
	return r.Result(CommentsTable(comments))
}

func (r *textRenderer) Object(obj notion.Object) error {
	return r.Result(CleanObject(obj))
}

func (r *textRenderer) Result(data any) error {
	w := r.opts.Stdout
	switch d := data.(type) {
	case *Table:
		_, err := fmt.Fprintln(w, d.Render())
		return err
	case *orderedmap.OrderedMap[string, any]:
		for pair := d.Oldest(); pair != nil; pair = pair.Next() {
			if _, err := fmt.Fprintf(w, "%s: %s\n", pair.Key, lineValue(pair.Value)); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "%s: %s\n", k, lineValue(d[k])); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, d)
		return err
	}
}

// Success prints the data as key/value lines. The message is printed only when
// there is no data to show.
func (r *textRenderer) Success(message string, data map[string]any) error {
	if len(data) > 0 {
		return r.Result(data)
	}
	if message == "" {
		return nil
	}
	return r.Result(message)
}

func (r *textRenderer) Error(message string, exitCode int) {
	errorStyle.Fprintf(r.opts.Stdout, "❌ %s\n", message)
	r.opts.Exit(exitCode)
}

func lineValue(v any) string {
	switch v.(type) {
	case nil:
		return ""
	case []any, map[string]any, *orderedmap.OrderedMap[string, any]:
		return FormatCell(v)
	default:
		return fmt.Sprint(v)
	}
}
