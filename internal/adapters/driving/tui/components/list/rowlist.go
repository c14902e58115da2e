// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// RowList displays codebook rows in a navigable list.
type RowList struct {
	rows     []domain.CodebookRow
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRowList creates a new row list component.
func NewRowList(s *styles.Styles) *RowList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RowList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the row list.
func (r *RowList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RowList) Update(msg tea.Msg) (*RowList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.rows) > 0 {
				r.selected = len(r.rows) - 1
			}
		}
	}
	return r, nil
}

// View renders the row list.
func (r *RowList) View() string {
	if len(r.rows) == 0 {
		return r.styles.Muted.Render("No variables yet. Ingest notes or press [a] to add one.")
	}

	lines := make([]string, 0, len(r.rows)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Variables (%d)", len(r.rows))), "")

	// Each row takes two lines.
	visible := (r.height - 2) / 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.rows))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(i, &r.rows[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *RowList) renderRow(index int, row *domain.CodebookRow) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := row.VariableName
	if name == "" {
		name = "(unnamed)"
	}
	nameWidth := max(r.width-12, 10)
	name = truncate(name, nameWidth)

	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, nameWidth, name)) +
			" " + r.styles.SourceBadge(row.Source)
	} else {
		nameLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s", indicator, nameWidth, name)) +
			" " + r.styles.SourceBadge(row.Source)
	}

	detail := row.VariableLabel
	if row.DefinitionText != "" {
		detail += " · " + row.DefinitionText
	}
	detailLine := r.styles.Muted.Render("    " + truncate(detail, max(r.width-6, 20)))

	return nameLine + "\n" + detailLine
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// SetRows replaces the rows, keeping the selection in range.
func (r *RowList) SetRows(rows []domain.CodebookRow) {
	r.rows = rows
	if r.selected >= len(rows) {
		r.selected = max(len(rows)-1, 0)
	}
}

// Rows returns the current rows.
func (r *RowList) Rows() []domain.CodebookRow {
	return r.rows
}

// Selected returns the index of the selected row.
func (r *RowList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RowList) SetSelected(index int) {
	if index >= 0 && index < len(r.rows) {
		r.selected = index
	}
}

// SelectID moves the selection to the row with id, if present.
func (r *RowList) SelectID(id string) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.selected = i
			return
		}
	}
}

// SelectedRow returns the currently selected row, or nil if none.
func (r *RowList) SelectedRow() *domain.CodebookRow {
	if len(r.rows) == 0 || r.selected < 0 || r.selected >= len(r.rows) {
		return nil
	}
	return &r.rows[r.selected]
}

// MoveUp moves selection up.
func (r *RowList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RowList) MoveDown() {
	if r.selected < len(r.rows)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RowList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of rows.
func (r *RowList) Count() int {
	return len(r.rows)
}

// IsEmpty returns whether the list is empty.
func (r *RowList) IsEmpty() bool {
	return len(r.rows) == 0
}
