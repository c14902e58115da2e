// Package editor provides the single-row codebook editor for the TUI.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/components/input"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/keymap"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

var errNoService = errors.New("codebook service not available")

// View edits the seven editable columns of one row.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	codebook driving.CodebookService

	ctx    context.Context
	row    domain.CodebookRow
	fields []domain.RowField
	inputs []*input.FieldInput
	focus  int
	err    error
	saving bool

	width  int
	height int
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, codebook driving.CodebookService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fields := domain.EditableFields()
	inputs := make([]*input.FieldInput, len(fields))
	for i := range fields {
		inputs[i] = input.NewFieldInput(s, domain.CodebookHeaders[i], "")
	}

	return &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		codebook: codebook,
		ctx:      context.Background(),
		fields:   fields,
		inputs:   inputs,
		width:    80,
		height:   24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetRow loads row into the form and focuses the first field.
func (v *View) SetRow(row domain.CodebookRow) tea.Cmd {
	v.row = row
	v.err = nil
	v.saving = false
	for i, f := range v.fields {
		v.inputs[i].SetValue(row.Value(f))
		v.inputs[i].Blur()
	}
	v.focus = 0
	return v.inputs[0].Focus()
}

// Row returns the row being edited.
func (v *View) Row() domain.CodebookRow {
	return v.row
}

// Init implements the view lifecycle.
func (v *View) Init() tea.Cmd {
	return v.inputs[v.focus].Init()
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RowSaved:
		v.saving = false
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewCodebook} }
	case keymap.Matches(key, v.keymap.NextField):
		return v, v.moveFocus(1)
	case keymap.Matches(key, v.keymap.PrevField):
		return v, v.moveFocus(-1)
	case key == "enter":
		if v.focus == len(v.inputs)-1 {
			return v, v.save()
		}
		return v, v.moveFocus(1)
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

// moveFocus cycles focus by delta, wrapping at both ends.
func (v *View) moveFocus(delta int) tea.Cmd {
	v.inputs[v.focus].Blur()
	n := len(v.inputs)
	v.focus = ((v.focus+delta)%n + n) % n
	return v.inputs[v.focus].Focus()
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Patch collects the fields whose value differs from the loaded row.
func (v *View) Patch() domain.RowPatch {
	var patch domain.RowPatch
	for i, f := range v.fields {
		value := v.inputs[i].Value()
		if value == v.row.Value(f) {
			continue
		}
		// Fields come from EditableFields so Set cannot fail.
		_ = patch.Set(f, value)
	}
	return patch
}

func (v *View) save() tea.Cmd {
	patch := v.Patch()
	if patch.IsEmpty() {
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewCodebook} }
	}

	v.saving = true
	id := v.row.ID
	return func() tea.Msg {
		if v.codebook == nil {
			return messages.RowSaved{ID: id, Err: errNoService}
		}
		res, err := v.codebook.UpdateRow(v.ctx, id, patch)
		return messages.RowSaved{ID: id, Messages: res.Announcements(), Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Edit variable"))
	b.WriteString("  ")
	b.WriteString(v.styles.SourceBadge(v.row.Source))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.row.ID))
	b.WriteString("\n\n")

	for _, in := range v.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.saving:
		b.WriteString(v.styles.Muted.Render("Saving..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] Next field  [shift+tab] Previous  [ctrl+s] Save  [esc] Cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, in := range v.inputs {
		in.SetWidth(width)
	}
}

// Err returns the last save error.
func (v *View) Err() error {
	return v.err
}
