// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/keymap"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label       string
	Description string
	Shortcut    string
	View        messages.ViewType
	Quit        bool // If true, selecting this item quits the app
}

// DefaultItems returns the menu entries in display order.
func DefaultItems() []Item {
	return []Item{
		{
			Label:       "Codebook",
			Description: "Review, edit, derive and export variables",
			Shortcut:    "c",
			View:        messages.ViewCodebook,
		},
		{
			Label:       "Annotations",
			Description: "Browse annotations of the loaded video",
			Shortcut:    "a",
			View:        messages.ViewSession,
		},
		{
			Label:       "Settings",
			Description: "Export file name, sheet name, ingest limits",
			Shortcut:    "s",
			View:        messages.ViewSettings,
		},
		{Label: "Help", Description: "Keybindings", Shortcut: "?", View: messages.ViewHelp},
		{Label: "Quit", Shortcut: "q", Quit: true},
	}
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items:  DefaultItems(),
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
			return v, nil
		case keymap.Matches(key, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil
		case keymap.Matches(key, v.keymap.Select):
			return v, v.choose(v.items[v.selected])
		}
		for i, item := range v.items {
			if item.Shortcut == key {
				v.selected = i
				return v, v.choose(item)
			}
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("MethodoSync"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Qualitative coding to quantitative codebooks"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := "[" + item.Shortcut + "] " + item.Label
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(label))
			if item.Description != "" {
				b.WriteString("  " + v.styles.Muted.Render(item.Description))
			}
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
