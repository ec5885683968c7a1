package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/lox/notionctl/internal/notion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UserError reports invalid input rather than a failed operation.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error to the process exit code used when reporting it.
func ExitCode(err error) int {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return ExitUsage
	}
	return ExitFailure
}

var (
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	infoStyle    = color.New(color.FgCyan)
	errorStyle   = color.New(color.FgRed)
)

func PrintSuccess(msg string) {
	successStyle.Fprintf(os.Stdout, "✓ %s\n", msg)
}

func PrintWarning(msg string) {
	warningStyle.Fprintf(os.Stderr, "! %s\n", msg)
}

func PrintInfo(msg string) {
	infoStyle.Fprintf(os.Stdout, "%s\n", msg)
}

// FormatSuccess wraps data with a leading success flag. Data keys follow in
// sorted order.
func FormatSuccess(data map[string]any) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	out.Set("success", true)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Set(k, data[k])
	}
	return out
}

// EmitJSON writes v as two-space indented JSON with a trailing newline.
// Non-ASCII characters and HTML-significant characters are written literally.
func EmitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(notion.Literal(v)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return flush(w)
}

func flush(w io.Writer) error {
	switch f := w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case *os.File:
		// Sync fails on pipes and terminals; the write itself is unbuffered.
		_ = f.Sync()
	}
	return nil
}
