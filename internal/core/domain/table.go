package domain

// CodebookHeaders are the spreadsheet column labels, in column order.
var CodebookHeaders = []string{
	"Variable Name",
	"Variable Label",
	"Definition",
	"Coding Rules — Inclusion",
	"Coding Rules — Exclusion",
	"Values / Scale",
	"Anchor Example",
}

// Table is a header plus string rows, ready for a tabular writer.
type Table struct {
	Header []string
	Rows   [][]string
}

// CodebookTable projects rows into the fixed seven-column table.
// Values are copied verbatim. ok is false when rows is empty; callers
// must not produce an artifact in that case.
func CodebookTable(rows []CodebookRow) (table Table, ok bool) {
	if len(rows) == 0 {
		return Table{}, false
	}

	header := make([]string, len(CodebookHeaders))
	copy(header, CodebookHeaders)

	out := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, []string{
			r.VariableName,
			r.VariableLabel,
			r.DefinitionText,
			r.InclusionRules,
			r.ExclusionRules,
			r.ValuesScale,
			r.AnchorExample,
		})
	}
	return Table{Header: header, Rows: out}, true
}
