// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/styles"
)

// PromptInput wraps a bubbles textinput with a question label.
// It backs the image URL and alt text prompts.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewPromptInput creates a new prompt input component.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 2048
	ti.Width = 50

	return &PromptInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Ask resets the input, shows label and focuses it. The placeholder is
// the value used when the user submits an empty answer.
func (p *PromptInput) Ask(label, placeholder string) tea.Cmd {
	p.label = label
	p.textinput.Reset()
	p.textinput.Placeholder = placeholder
	return p.textinput.Focus()
}

// Init initialises the prompt input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the label above the input field.
func (p *PromptInput) View() string {
	label := p.styles.Title.Render(p.label)
	field := p.styles.InputField.Render(p.textinput.View())
	return lipgloss.JoinVertical(lipgloss.Left, label, field)
}

// Label returns the current question.
func (p *PromptInput) Label() string {
	return p.label
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PromptInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PromptInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PromptInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	// Account for border and padding
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PromptInput) Reset() {
	p.textinput.Reset()
}
