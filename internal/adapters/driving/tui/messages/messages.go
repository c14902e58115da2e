// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCodebook lists the codebook rows.
	ViewCodebook
	// ViewEditor edits a single codebook row.
	ViewEditor
	// ViewSession shows the phase 1 annotations.
	ViewSession
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCodebook:
		return "codebook"
	case ViewEditor:
		return "editor"
	case ViewSession:
		return "session"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Announced carries status messages produced by a service call.
type Announced struct {
	Messages []string
}

// RowsLoaded carries the current codebook rows.
type RowsLoaded struct {
	Rows []domain.CodebookRow
	Err  error
}

// RowSelected asks for the editor to open on a row.
type RowSelected struct {
	Row domain.CodebookRow
}

// RowAdded signals a deductive row was appended.
type RowAdded struct {
	Row      domain.CodebookRow
	Messages []string
	Err      error
}

// RowSaved signals an edit was merged into a row.
type RowSaved struct {
	ID       string
	Messages []string
	Err      error
}

// RowDeleted signals a row was removed.
type RowDeleted struct {
	ID       string
	Messages []string
	Err      error
}

// CodebookDerived signals the codebook was rebuilt from parsed documents.
type CodebookDerived struct {
	Messages []string
	Err      error
}

// CodebookExported signals the spreadsheet was written.
type CodebookExported struct {
	Path     string
	Messages []string
	Err      error
}

// SessionLoaded carries the phase 1 session.
type SessionLoaded struct {
	Session domain.Session
	Err     error
}

// SettingsLoaded carries the resolved settings as display text.
type SettingsLoaded struct {
	Values map[string]string
	Path   string
	Err    error
}

// SettingsSaved signals a setting was persisted.
type SettingsSaved struct {
	Key string
	Err error
}
