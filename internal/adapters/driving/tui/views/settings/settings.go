// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/components/input"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

var errNoService = errors.New("settings service not available")

// View lists configuration keys and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	keys     []string
	values   map[string]string
	path     string
	err      error
	notice   string
	selected int

	// editor is non-nil while a value is being edited.
	editor *input.FieldInput

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
		keys:            domain.SettingKeys(),
		values:          map[string]string{},
		width:           80,
		height:          24,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoService}
		}
		return messages.SettingsLoaded{
			Values: v.settingsService.Values(),
			Path:   v.settingsService.Path(),
		}
	}
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.editor = nil
	v.err = nil
	v.notice = ""
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.values = msg.Values
			v.path = msg.Path
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.editor = nil
		v.err = nil
		v.notice = fmt.Sprintf("Saved %s.", msg.Key)
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editor != nil {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case "enter", "e":
		return v, v.startEdit()
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "q":
		return v, tea.Quit
	}
	return v, nil
}

func (v *View) startEdit() tea.Cmd {
	if v.settingsService == nil {
		v.err = errNoService
		return nil
	}
	key := v.keys[v.selected]
	v.editor = input.NewFieldInput(v.styles, key, "")
	v.editor.SetWidth(v.width)
	v.editor.SetValue(v.values[key])
	v.notice = ""
	v.err = nil
	return v.editor.Focus()
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editor = nil
		v.err = nil
		return v, nil
	case "enter":
		return v, v.save(v.keys[v.selected], v.editor.Value())
	}
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) save(key, value string) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

// View renders the settings list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, key := range v.keys {
		line := fmt.Sprintf("%-22s %s", key, v.values[key])
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.editor != nil {
		b.WriteString(v.editor.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	if v.editor != nil {
		b.WriteString(v.styles.Help.Render("[enter] Save  [esc] Cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Edit  [esc] Back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if v.editor != nil {
		v.editor.SetWidth(width)
	}
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editor != nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
