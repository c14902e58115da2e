// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
)

// CharLimit caps a single field's length.
const CharLimit = 2000

// FieldInput is a labelled single-line input used in forms.
type FieldInput struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewFieldInput creates an unfocused input labelled label.
func NewFieldInput(s *styles.Styles, label, placeholder string) *FieldInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = CharLimit
	ti.Width = 50

	return &FieldInput{
		label:     label,
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (f *FieldInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *FieldInput) Update(msg tea.Msg) (*FieldInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input box.
func (f *FieldInput) View() string {
	box := f.styles.InputField
	if f.textinput.Focused() {
		box = f.styles.FocusedInput
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center,
		f.styles.Label.Render(f.label),
		box.Render(f.textinput.View()),
	)
}

// Label returns the field label.
func (f *FieldInput) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *FieldInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *FieldInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *FieldInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FieldInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FieldInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (f *FieldInput) SetWidth(width int) {
	f.width = width
	f.textinput.Width = max(width-32, 20)
}

// Width returns the current width.
func (f *FieldInput) Width() int {
	return f.width
}

// Reset clears the input.
func (f *FieldInput) Reset() {
	f.textinput.Reset()
}
