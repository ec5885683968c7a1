package output

import (
	"strings"

	"github.com/lox/notionctl/internal/notion"
)

// PlainText concatenates the plain_text of every span, ignoring annotations.
func PlainText(richText any) string {
	return reduceRichText(richText, false)
}

// StyledText concatenates spans with markdown markers for their annotations.
func StyledText(richText any) string {
	return reduceRichText(richText, true)
}

func reduceRichText(richText any, styled bool) string {
	if isEmptyValue(richText) {
		return ""
	}

	var spans []any
	switch typed := richText.(type) {
	case []any:
		spans = typed
	case []notion.Object, []map[string]any:
		for _, obj := range notion.Objects(typed) {
			spans = append(spans, obj)
		}
	default:
		return notion.ToString(richText)
	}

	var b strings.Builder
	for _, item := range spans {
		span, ok := notion.AsObject(item)
		if !ok {
			continue
		}
		text := span.Str("plain_text")
		if styled {
			text = applyAnnotations(text, span.Map("annotations"))
		}
		b.WriteString(text)
	}
	return b.String()
}

// Markers wrap innermost first.
var annotationMarkers = []struct {
	name   string
	marker string
}{
	{"code", "`"},
	{"strikethrough", "~~"},
	{"italic", "*"},
	{"bold", "**"},
}

func applyAnnotations(text string, annotations notion.Object) string {
	if text == "" || annotations == nil {
		return text
	}
	for _, a := range annotationMarkers {
		if annotations.Bool(a.name) {
			text = a.marker + text + a.marker
		}
	}
	return text
}

func isEmptyValue(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	case notion.Object:
		return len(typed) == 0
	default:
		return false
	}
}
