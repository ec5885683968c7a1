package output

import (
	"strings"

	"github.com/lox/notionctl/internal/notion"
)

type blockField string

const (
	fieldContent    blockField = "content"
	fieldChecked    blockField = "checked"
	fieldLanguage   blockField = "language"
	fieldURL        blockField = "url"
	fieldCaption    blockField = "caption"
	fieldExpression blockField = "expression"
)

var (
	textFields  = []blockField{fieldContent}
	mediaFields = []blockField{fieldURL, fieldCaption}
)

// blockFields lists the data each block type carries. Types absent from the
// table carry nothing beyond id and type.
var blockFields = map[string][]blockField{
	"paragraph":          textFields,
	"heading_1":          textFields,
	"heading_2":          textFields,
	"heading_3":          textFields,
	"bulleted_list_item": textFields,
	"numbered_list_item": textFields,
	"toggle":             textFields,
	"quote":              textFields,
	"callout":            textFields,
	"to_do":              {fieldContent, fieldChecked},
	"code":               {fieldContent, fieldLanguage},
	"image":              mediaFields,
	"file":               mediaFields,
	"pdf":                mediaFields,
	"video":              mediaFields,
	"audio":              mediaFields,
	"bookmark":           mediaFields,
	"equation":           {fieldExpression},
	"divider":            nil,
	"table_of_contents":  nil,
}

var mediaIcons = map[string]string{
	"image":    "🖼️",
	"file":     "📎",
	"pdf":      "📄",
	"video":    "🎥",
	"audio":    "🔊",
	"bookmark": "🔖",
}

const (
	indentUnit     = "  "
	defaultCallout = "💡"
	dividerLine    = "---"
	tocPlaceholder = "[Table of Contents]"
)

// StructuredBlock is the JSON form of a block and its descendants.
type StructuredBlock struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Content    *string           `json:"content,omitempty"`
	Checked    *bool             `json:"checked,omitempty"`
	Language   *string           `json:"language,omitempty"`
	URL        *string           `json:"url,omitempty"`
	Caption    *string           `json:"caption,omitempty"`
	Expression *string           `json:"expression,omitempty"`
	Children   []StructuredBlock `json:"children"`
}

// blockData is what both renderers read from a block payload.
type blockData struct {
	typ        string
	styled     string
	plain      string
	checked    bool
	language   string
	url        string
	caption    string
	expression string
	emoji      string
}

func extractBlock(block notion.Object) blockData {
	typ := block.Type()
	payload := block.Map(typ)

	d := blockData{typ: typ}
	for _, f := range blockFields[typ] {
		switch f {
		case fieldContent:
			d.styled = StyledText(payload.Value("rich_text"))
			d.plain = PlainText(payload.Value("rich_text"))
		case fieldChecked:
			d.checked = payload.Bool("checked")
		case fieldLanguage:
			d.language = payload.Str("language")
		case fieldURL:
			d.url = blockURL(payload)
		case fieldCaption:
			d.caption = PlainText(payload.Value("caption"))
		case fieldExpression:
			d.expression = payload.Str("expression")
		}
	}
	if typ == "callout" {
		d.emoji = calloutEmoji(payload)
	}
	return d
}

// blockURL prefers external.url for external references, then file.url, then
// a plain url (bookmarks).
func blockURL(payload notion.Object) string {
	if payload.Type() == "external" {
		if u := payload.Map("external").Str("url"); u != "" {
			return u
		}
	}
	if u := payload.Map("file").Str("url"); u != "" {
		return u
	}
	return payload.Str("url")
}

func calloutEmoji(payload notion.Object) string {
	icon := payload.Map("icon")
	if emoji := icon.Str("emoji"); emoji != "" {
		return emoji
	}
	return defaultCallout
}

// RenderBlocksText renders a block list as indented display text.
func RenderBlocksText(blocks []notion.Object) string {
	var lines []string
	for _, block := range blocks {
		lines = appendBlockLines(lines, block, 0)
	}
	return strings.Join(lines, "\n")
}

// RenderBlockText renders one block and its descendants at the given indent level.
func RenderBlockText(block notion.Object, level int) string {
	return strings.Join(appendBlockLines(nil, block, level), "\n")
}

func appendBlockLines(lines []string, block notion.Object, level int) []string {
	prefix := strings.Repeat(indentUnit, level)
	for _, line := range blockLines(extractBlock(block)) {
		lines = append(lines, prefix+line)
	}
	for _, child := range notion.Children(block) {
		lines = appendBlockLines(lines, child, level+1)
	}
	return lines
}

func blockLines(d blockData) []string {
	switch d.typ {
	case "paragraph":
		if strings.TrimSpace(d.styled) == "" {
			return nil
		}
		return []string{d.styled}
	case "heading_1":
		return []string{"# " + d.styled}
	case "heading_2":
		return []string{"## " + d.styled}
	case "heading_3":
		return []string{"### " + d.styled}
	case "bulleted_list_item":
		return []string{"• " + d.styled}
	case "numbered_list_item":
		return []string{"1. " + d.styled}
	case "to_do":
		box := "☐"
		if d.checked {
			box = "☑"
		}
		return []string{box + " " + d.styled}
	case "toggle":
		return []string{"▶ " + d.styled}
	case "code":
		lines := []string{"```" + d.language}
		lines = append(lines, strings.Split(d.plain, "\n")...)
		return append(lines, "```")
	case "quote":
		return []string{"> " + d.styled}
	case "callout":
		return []string{d.emoji + " " + d.styled}
	case "divider":
		return []string{dividerLine}
	case "table_of_contents":
		return []string{tocPlaceholder}
	case "image", "file", "pdf", "video", "audio", "bookmark":
		parts := []string{mediaIcons[d.typ]}
		if d.caption != "" {
			parts = append(parts, d.caption)
		}
		if d.url != "" {
			parts = append(parts, d.url)
		}
		return []string{strings.Join(parts, " ")}
	case "equation":
		return []string{"∑ " + d.expression}
	default:
		return []string{"[" + d.typ + "]"}
	}
}

// StructureBlocks converts a block list to its JSON form.
func StructureBlocks(blocks []notion.Object) []StructuredBlock {
	out := make([]StructuredBlock, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, StructureBlock(block))
	}
	return out
}

func StructureBlock(block notion.Object) StructuredBlock {
	d := extractBlock(block)
	sb := StructuredBlock{
		ID:       block.Str("id"),
		Type:     d.typ,
		Children: StructureBlocks(notion.Children(block)),
	}
	for _, f := range blockFields[d.typ] {
		switch f {
		case fieldContent:
			sb.Content = ptr(d.plain)
		case fieldChecked:
			sb.Checked = ptr(d.checked)
		case fieldLanguage:
			sb.Language = ptr(d.language)
		case fieldURL:
			sb.URL = ptr(d.url)
		case fieldCaption:
			sb.Caption = ptr(d.caption)
		case fieldExpression:
			sb.Expression = ptr(d.expression)
		}
	}
	return sb
}

func ptr[T any](v T) *T {
	return &v
}
