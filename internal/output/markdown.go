package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

func NewMarkdownRenderer() (*MarkdownRenderer, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
		if width > 120 {
			width = 120
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &MarkdownRenderer{renderer: r}, nil
}

func (m *MarkdownRenderer) Render(content string) (string, error) {
	content = displayToMarkdown(content)

	out, err := m.renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return strings.TrimSpace(out), nil
}

var calloutPrefixes = []string{"💡", "ℹ️", "⚠️", "📌", "❗", "🔥"}

// displayToMarkdown rewrites the block display glyphs into markdown syntax
// glamour understands. Callouts become block quotes separated from what follows.
func displayToMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inCallout := false
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			result = append(result, line)
			continue
		}
		if inFence {
			result = append(result, line)
			continue
		}

		if isCallout(trimmed) {
			inCallout = true
			result = append(result, indent+"> "+trimmed)
			continue
		}
		if inCallout {
			result = append(result, "")
			inCallout = false
		}

		switch {
		case strings.HasPrefix(trimmed, "• "):
			line = indent + "- " + strings.TrimPrefix(trimmed, "• ")
		case strings.HasPrefix(trimmed, "☑ "):
			line = indent + "- [x] " + strings.TrimPrefix(trimmed, "☑ ")
		case strings.HasPrefix(trimmed, "☐ "):
			line = indent + "- [ ] " + strings.TrimPrefix(trimmed, "☐ ")
		case strings.HasPrefix(trimmed, "▶ "):
			line = indent + "- " + trimmed
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

func isCallout(line string) bool {
	for _, prefix := range calloutPrefixes {
		if strings.HasPrefix(line, prefix+" ") {
			return true
		}
	}
	return false
}
