package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errAuthSetupCancelled = errors.New("API token setup cancelled")

var tokenPrefixes = []string{"ntn_", "secret_"}

var (
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type promptStage int

const (
	stageEnterToken promptStage = iota
	stageConfirmToken
)

// tokenPrompt reads an integration token and shows it masked for confirmation
// before anything is saved.
type tokenPrompt struct {
	stage     promptStage
	input     textinput.Model
	token     string
	notice    string
	cancelled bool
}

func newTokenPrompt() tokenPrompt {
	input := textinput.New()
	input.Prompt = "token › "
	input.Placeholder = "ntn_..."
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 512
	input.Focus()

	return tokenPrompt{stage: stageEnterToken, input: input}
}

func promptForToken() (string, error) {
	final, err := tea.NewProgram(newTokenPrompt()).Run()
	if err != nil {
		return "", err
	}

	prompt, ok := final.(tokenPrompt)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model type %T", final)
	}
	if prompt.cancelled {
		return "", errAuthSetupCancelled
	}
	if prompt.token == "" {
		return "", fmt.Errorf("API token is required")
	}
	return prompt.token, nil
}

func (p tokenPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p tokenPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if key.Type == tea.KeyCtrlC {
		p.cancelled = true
		return p, tea.Quit
	}
	if p.stage == stageConfirmToken {
		return p.updateConfirm(key)
	}
	return p.updateEnter(key)
}

func (p tokenPrompt) updateEnter(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		p.cancelled = true
		return p, tea.Quit
	case tea.KeyCtrlO:
		p.notice = "Opened the integrations page in your browser."
		if err := openBrowserURL(internalIntegrationsURL); err != nil {
			p.notice = "Could not open a browser: " + err.Error()
		}
		return p, nil
	case tea.KeyEnter:
		token := strings.TrimSpace(p.input.Value())
		if token == "" {
			p.notice = "Paste a token first."
			return p, nil
		}
		p.token = token
		p.notice = ""
		if !hasTokenPrefix(token) {
			p.notice = "This does not look like an integration token (ntn_... or secret_...)."
		}
		p.stage = stageConfirmToken
		p.input.Blur()
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(key)
	return p, cmd
}

func (p tokenPrompt) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter", "y":
		return p, tea.Quit
	case "esc", "n":
		p.stage = stageEnterToken
		p.token = ""
		p.notice = ""
		p.input.Focus()
	}
	return p, nil
}

func (p tokenPrompt) View() string {
	var b strings.Builder
	b.WriteString(promptTitleStyle.Render("Connect notion to your workspace"))
	b.WriteString("\n\n")

	switch p.stage {
	case stageEnterToken:
		b.WriteString("Create an internal integration at\n  " + internalIntegrationsURL + "\n")
		b.WriteString("then share the databases and pages you want to read with it.\n\n")
		b.WriteString(p.input.View())
		b.WriteString("\n\n")
		b.WriteString(promptHintStyle.Render("enter next · ctrl+o open integrations page · esc cancel"))
	case stageConfirmToken:
		b.WriteString("Save " + maskToken(p.token) + "?\n\n")
		b.WriteString(promptHintStyle.Render("y/enter save · n/esc edit · ctrl+c cancel"))
	}

	if p.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(promptNoteStyle.Render(p.notice))
	}
	return b.String()
}

func hasTokenPrefix(token string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// maskToken keeps the prefix and last four characters of token.
func maskToken(token string) string {
	const tail = 4
	prefix := ""
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(token, p) {
			prefix = p
			break
		}
	}
	rest := strings.TrimPrefix(token, prefix)
	if len(rest) <= tail {
		return prefix + strings.Repeat("•", len(rest))
	}
	return prefix + strings.Repeat("•", len(rest)-tail) + rest[len(rest)-tail:]
}
