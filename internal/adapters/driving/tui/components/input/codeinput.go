// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// rawLimit bounds the raw input so a pasted identifier with separators
// ("9114.015.10832") survives sanitisation intact.
const rawLimit = 32

// CodeInput wraps a bubbles textinput that accepts a 12-digit product
// identifier. Every update strips non-digits and caps the value at the
// identifier length, so the value is always a digit prefix of a valid
// identifier.
type CodeInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewCodeInput creates a new identifier input component.
func NewCodeInput(s *styles.Styles) *CodeInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter 12-digit identifier..."
	ti.Focus()
	ti.CharLimit = rawLimit
	ti.Width = 30

	return &CodeInput{
		textinput: ti,
		styles:    s,
		width:     30,
	}
}

// Init initialises the input.
func (c *CodeInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages and re-sanitises the value.
func (c *CodeInput) Update(msg tea.Msg) (*CodeInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	c.sanitise()
	return c, cmd
}

// sanitise reduces the raw value to at most 12 digits.
func (c *CodeInput) sanitise() {
	raw := c.textinput.Value()
	digits := domain.Normalize(raw)
	if len(digits) > domain.IdentifierLength {
		digits = digits[:domain.IdentifierLength]
	}
	if digits != raw {
		c.textinput.SetValue(digits)
		c.textinput.CursorEnd()
	}
}

// View renders the input.
func (c *CodeInput) View() string {
	label := c.styles.Title.Render("Identifier: ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the sanitised digits.
func (c *CodeInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value, applying the same sanitisation as typing.
func (c *CodeInput) SetValue(value string) {
	c.textinput.SetValue(value)
	c.sanitise()
}

// Complete reports whether a full 12-digit identifier has been entered.
func (c *CodeInput) Complete() bool {
	return len(c.textinput.Value()) == domain.IdentifierLength
}

// Focus sets focus on the input.
func (c *CodeInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CodeInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CodeInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CodeInput) SetWidth(width int) {
	c.width = width
	inputWidth := width - 16
	if inputWidth < 16 {
		inputWidth = 16
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CodeInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *CodeInput) Reset() {
	c.textinput.Reset()
}
