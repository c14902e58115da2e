// Package codebook provides the codebook list view for the TUI.
package codebook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/components/list"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/components/status"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/keymap"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

var errNoService = errors.New("codebook service not available")

// View lists codebook rows and dispatches row actions.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	codebook driving.CodebookService
	settings driving.SettingsService

	ctx       context.Context
	list      *list.RowList
	bar       *status.Bar
	exportDir string

	// pendingDelete holds the row awaiting confirmation.
	pendingDelete *domain.CodebookRow

	width   int
	height  int
	loading bool
}

// NewView creates a new codebook view. settings may be nil.
func NewView(
	s *styles.Styles,
	codebook driving.CodebookService,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.CodebookHelp())

	return &View{
		styles:    s,
		keymap:    km,
		codebook:  codebook,
		settings:  settings,
		ctx:       context.Background(),
		list:      list.NewRowList(s),
		bar:       bar,
		exportDir: ".",
		width:     80,
		height:    24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetExportDir sets the directory the spreadsheet is written to.
func (v *View) SetExportDir(dir string) {
	v.exportDir = dir
}

// Init loads the rows.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadRows()
}

func (v *View) loadRows() tea.Cmd {
	return func() tea.Msg {
		if v.codebook == nil {
			return messages.RowsLoaded{Err: errNoService}
		}
		rows, err := v.codebook.Rows(v.ctx)
		return messages.RowsLoaded{Rows: rows, Err: err}
	}
}

// Update handles messages for the codebook view.
//
//nolint:gocyclo // message dispatch
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RowsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.bar.Fail(msg.Err)
			return v, nil
		}
		v.list.SetRows(msg.Rows)
		v.bar.SetRowCount(len(msg.Rows))
		return v, nil

	case messages.RowAdded:
		if msg.Err != nil {
			v.bar.Fail(msg.Err)
			return v, nil
		}
		v.bar.Notice(msg.Messages...)
		row := msg.Row
		return v, tea.Batch(v.loadRows(), func() tea.Msg {
			return messages.RowSelected{Row: row}
		})

	case messages.RowSaved:
		return v, v.afterChange(msg.Messages, msg.Err)

	case messages.RowDeleted:
		return v, v.afterChange(msg.Messages, msg.Err)

	case messages.CodebookDerived:
		return v, v.afterChange(msg.Messages, msg.Err)

	case messages.CodebookExported:
		if msg.Err != nil {
			v.bar.Fail(fmt.Errorf("export failed: %w", msg.Err))
			return v, nil
		}
		v.bar.Notice(append(msg.Messages, "Wrote "+msg.Path)...)
		return v, nil

	case messages.ErrorOccurred:
		v.bar.Fail(msg.Err)
		return v, nil
	}

	return v, nil
}

// afterChange reports the outcome of a mutation and reloads on success.
func (v *View) afterChange(msgs []string, err error) tea.Cmd {
	if err != nil {
		v.bar.Fail(err)
		return nil
	}
	v.bar.Notice(msgs...)
	return v.loadRows()
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if v.pendingDelete != nil {
		row := v.pendingDelete
		v.pendingDelete = nil
		if key == "y" || key == "Y" {
			return v, v.deleteRow(row.ID)
		}
		v.bar.Clear()
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Up), keymap.Matches(key, v.keymap.Down):
		v.list.Update(msg)
	case keymap.Matches(key, v.keymap.Edit):
		if row := v.list.SelectedRow(); row != nil {
			selected := *row
			return v, func() tea.Msg { return messages.RowSelected{Row: selected} }
		}
	case keymap.Matches(key, v.keymap.Add):
		return v, v.addRow()
	case keymap.Matches(key, v.keymap.Delete):
		if row := v.list.SelectedRow(); row != nil {
			selected := *row
			v.pendingDelete = &selected
		}
	case keymap.Matches(key, v.keymap.Derive):
		v.bar.SetState(status.StateWorking)
		v.bar.SetMessage("Deriving variables…")
		return v, v.derive()
	case keymap.Matches(key, v.keymap.Export):
		v.bar.SetState(status.StateWorking)
		v.bar.SetMessage("Generating Excel workbook…")
		return v, v.export()
	case keymap.Matches(key, v.keymap.Reload):
		v.loading = true
		return v, v.loadRows()
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case key == "q":
		return v, tea.Quit
	}
	return v, nil
}

func (v *View) addRow() tea.Cmd {
	return func() tea.Msg {
		if v.codebook == nil {
			return messages.RowAdded{Err: errNoService}
		}
		row, res, err := v.codebook.AddRow(v.ctx)
		return messages.RowAdded{Row: row, Messages: res.Announcements(), Err: err}
	}
}

func (v *View) deleteRow(id string) tea.Cmd {
	return func() tea.Msg {
		if v.codebook == nil {
			return messages.RowDeleted{ID: id, Err: errNoService}
		}
		res, err := v.codebook.DeleteRow(v.ctx, id)
		return messages.RowDeleted{ID: id, Messages: res.Announcements(), Err: err}
	}
}

func (v *View) derive() tea.Cmd {
	return func() tea.Msg {
		if v.codebook == nil {
			return messages.CodebookDerived{Err: errNoService}
		}
		res, err := v.codebook.Derive(v.ctx)
		return messages.CodebookDerived{Messages: res.Announcements(), Err: err}
	}
}

// ExportPath returns where export writes the spreadsheet.
func (v *View) ExportPath() string {
	filename := domain.DefaultExportFilename
	if v.settings != nil {
		filename = v.settings.Get().ExportFilename
	}
	return filepath.Join(v.exportDir, filename)
}

func (v *View) export() tea.Cmd {
	path := v.ExportPath()
	return func() tea.Msg {
		if v.codebook == nil {
			return messages.CodebookExported{Path: path, Err: errNoService}
		}
		f, err := os.Create(path)
		if err != nil {
			return messages.CodebookExported{Path: path, Err: fmt.Errorf("creating %s: %w", path, err)}
		}
		res, err := v.codebook.Export(v.ctx, f)
		if err != nil {
			f.Close()
			os.Remove(path)
			return messages.CodebookExported{Path: path, Err: err}
		}
		if err := f.Close(); err != nil {
			return messages.CodebookExported{Path: path, Err: err}
		}
		return messages.CodebookExported{Path: path, Messages: res.Announcements()}
	}
}

// View renders the codebook list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Codebook"))
	b.WriteString("\n\n")

	if v.loading && v.list.IsEmpty() {
		b.WriteString(v.styles.Muted.Render("Loading..."))
	} else {
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	if v.pendingDelete != nil {
		name := v.pendingDelete.VariableName
		if name == "" {
			name = "this variable"
		}
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s? [y/N]", name)))
		b.WriteString("\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-8, 4))
	v.bar.SetWidth(width)
}

// Rows returns the rows currently shown.
func (v *View) Rows() []domain.CodebookRow {
	return v.list.Rows()
}

// Selected returns the selected row, or nil.
func (v *View) Selected() *domain.CodebookRow {
	return v.list.SelectedRow()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.bar
}

// PendingDelete reports whether a delete is awaiting confirmation.
func (v *View) PendingDelete() bool {
	return v.pendingDelete != nil
}
