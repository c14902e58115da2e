// Package xlsx writes the codebook table as an Excel workbook.
//
// The table arrives fully projected; this package owns presentation only:
// header emphasis, alternating row fills, column widths and a frozen
// header row.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.TableExporter = (*Exporter)(nil)

// Workbook presentation.
const (
	DefaultCreator = "MethodoSync — SIM Lab @ SIUE"

	headerFill   = "0D7377"
	headerFont   = "FFFFFF"
	headerBorder = "085A5E"
	evenRowFill  = "FFF4E6"
	oddRowFill   = "FFFFFF"

	headerHeight = 28
	rowHeight    = 60
)

// columnWidths are indexed by column position; extra columns use the last width.
var columnWidths = []float64{22, 30, 38, 35, 35, 28, 40}

// Exporter renders tables with excelize.
type Exporter struct {
	sheetName string
	creator   string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithSheetName sets the worksheet name.
func WithSheetName(name string) Option {
	return func(e *Exporter) {
		if name != "" {
			e.sheetName = name
		}
	}
}

// WithCreator sets the workbook creator property.
func WithCreator(creator string) Option {
	return func(e *Exporter) {
		e.creator = creator
	}
}

// New creates an exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		sheetName: domain.DefaultSheetName,
		creator:   DefaultCreator,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extension returns ".xlsx".
func (e *Exporter) Extension() string {
	return ".xlsx"
}

// Export writes table as a single-sheet workbook to w.
func (e *Exporter) Export(ctx context.Context, table domain.Table, w io.Writer) error {
	if len(table.Header) == 0 {
		return fmt.Errorf("%w: table has no columns", domain.ErrInvalidInput)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), e.sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: e.creator,
		Title:   "Codebook",
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := e.writeRow(f, 1, table.Header, styles.header, headerHeight); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		style := styles.even
		if i%2 == 1 {
			style = styles.odd
		}
		if err := e.writeRow(f, i+2, padRow(row, len(table.Header)), style, rowHeight); err != nil {
			return err
		}
	}

	if err := e.layout(f, len(table.Header)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// writeRow writes values into row r (1-based) and styles every cell,
// including empty ones.
func (e *Exporter) writeRow(f *excelize.File, r int, values []string, style int, height float64) error {
	first, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), r)
	if err != nil {
		return err
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(e.sheetName, first, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", r, err)
	}
	if err := f.SetCellStyle(e.sheetName, first, last, style); err != nil {
		return fmt.Errorf("styling row %d: %w", r, err)
	}
	if err := f.SetRowHeight(e.sheetName, r, height); err != nil {
		return fmt.Errorf("sizing row %d: %w", r, err)
	}
	return nil
}

// layout sets column widths and freezes the header row.
func (e *Exporter) layout(f *excelize.File, columns int) error {
	for c := 1; c <= columns; c++ {
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		width := columnWidths[min(c, len(columnWidths))-1]
		if err := f.SetColWidth(e.sheetName, name, name, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	return f.SetPanes(e.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

type styleSet struct {
	header, even, odd int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Font: &excelize.Font{Bold: true, Color: headerFont, Family: "Calibri", Size: 11},
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
		Border: []excelize.Border{{Type: "bottom", Color: headerBorder, Style: 2}},
	})
	if err != nil {
		return s, fmt.Errorf("creating header style: %w", err)
	}

	if s.even, err = dataStyle(f, evenRowFill); err != nil {
		return s, err
	}
	if s.odd, err = dataStyle(f, oddRowFill); err != nil {
		return s, err
	}
	return s, nil
}

func dataStyle(f *excelize.File, fill string) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return 0, fmt.Errorf("creating row style: %w", err)
	}
	return id, nil
}

// padRow extends short rows so every cell in the row gets styled.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
