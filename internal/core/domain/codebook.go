package domain

import (
	"fmt"
	"slices"
)

// DefaultValuesScale pre-fills the Values / Scale column of every new row.
const DefaultValuesScale = "0 = Absent, 1 = Present, -99 = Missing/Uncodable"

// RowSource records where a codebook row came from.
type RowSource string

// Row provenance.
const (
	// RowSourceInductive rows are derived from parsed qualitative data.
	RowSourceInductive RowSource = "inductive"

	// RowSourceDeductive rows are authored manually by the analyst.
	RowSourceDeductive RowSource = "deductive"
)

// IsValid returns true if the source is recognised.
func (s RowSource) IsValid() bool {
	return s == RowSourceInductive || s == RowSourceDeductive
}

// String returns the string representation.
func (s RowSource) String() string {
	return string(s)
}

// CodebookRow is one quantitative variable definition.
// Source is fixed at creation; every other field except ID is editable.
type CodebookRow struct {
	ID             string    `json:"id"`
	Source         RowSource `json:"source"`
	VariableName   string    `json:"variable_name"`
	VariableLabel  string    `json:"variable_label"`
	DefinitionText string    `json:"definition"`
	InclusionRules string    `json:"inclusion_rules"`
	ExclusionRules string    `json:"exclusion_rules"`
	ValuesScale    string    `json:"values_scale"`
	AnchorExample  string    `json:"anchor_example"`
}

// NewInductiveRow builds a derived row for a category label.
func NewInductiveRow(id, label string) CodebookRow {
	return CodebookRow{
		ID:            id,
		Source:        RowSourceInductive,
		VariableName:  SanitizeVariableName(label),
		VariableLabel: label,
		ValuesScale:   DefaultValuesScale,
	}
}

// NewDeductiveRow builds an empty manually-authored row.
func NewDeductiveRow(id string) CodebookRow {
	return CodebookRow{
		ID:          id,
		Source:      RowSourceDeductive,
		ValuesScale: DefaultValuesScale,
	}
}

// RowField names an editable codebook column.
type RowField string

// Editable fields.
const (
	FieldVariableName   RowField = "variable_name"
	FieldVariableLabel  RowField = "variable_label"
	FieldDefinition     RowField = "definition"
	FieldInclusionRules RowField = "inclusion_rules"
	FieldExclusionRules RowField = "exclusion_rules"
	FieldValuesScale    RowField = "values_scale"
	FieldAnchorExample  RowField = "anchor_example"
)

// EditableFields lists the editable fields in column order.
func EditableFields() []RowField {
	return []RowField{
		FieldVariableName,
		FieldVariableLabel,
		FieldDefinition,
		FieldInclusionRules,
		FieldExclusionRules,
		FieldValuesScale,
		FieldAnchorExample,
	}
}

// IsValid returns true if the field is editable.
func (f RowField) IsValid() bool {
	return slices.Contains(EditableFields(), f)
}

// Value returns the row's current value for field f.
func (r *CodebookRow) Value(f RowField) string {
	switch f {
	case FieldVariableName:
		return r.VariableName
	case FieldVariableLabel:
		return r.VariableLabel
	case FieldDefinition:
		return r.DefinitionText
	case FieldInclusionRules:
		return r.InclusionRules
	case FieldExclusionRules:
		return r.ExclusionRules
	case FieldValuesScale:
		return r.ValuesScale
	case FieldAnchorExample:
		return r.AnchorExample
	default:
		return ""
	}
}

// RowPatch is a partial update. Nil fields are left unchanged.
// ID and Source cannot be patched.
type RowPatch struct {
	VariableName   *string `json:"variable_name,omitempty"`
	VariableLabel  *string `json:"variable_label,omitempty"`
	DefinitionText *string `json:"definition,omitempty"`
	InclusionRules *string `json:"inclusion_rules,omitempty"`
	ExclusionRules *string `json:"exclusion_rules,omitempty"`
	ValuesScale    *string `json:"values_scale,omitempty"`
	AnchorExample  *string `json:"anchor_example,omitempty"`
}

// Set records value for field f in the patch.
func (p *RowPatch) Set(f RowField, value string) error {
	v := value
	switch f {
	case FieldVariableName:
		p.VariableName = &v
	case FieldVariableLabel:
		p.VariableLabel = &v
	case FieldDefinition:
		p.DefinitionText = &v
	case FieldInclusionRules:
		p.InclusionRules = &v
	case FieldExclusionRules:
		p.ExclusionRules = &v
	case FieldValuesScale:
		p.ValuesScale = &v
	case FieldAnchorExample:
		p.AnchorExample = &v
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, f)
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p RowPatch) IsEmpty() bool {
	return p == RowPatch{}
}

// Apply returns a copy of row with the patch merged in.
func (p RowPatch) Apply(row CodebookRow) CodebookRow {
	if p.VariableName != nil {
		row.VariableName = *p.VariableName
	}
	if p.VariableLabel != nil {
		row.VariableLabel = *p.VariableLabel
	}
	if p.DefinitionText != nil {
		row.DefinitionText = *p.DefinitionText
	}
	if p.InclusionRules != nil {
		row.InclusionRules = *p.InclusionRules
	}
	if p.ExclusionRules != nil {
		row.ExclusionRules = *p.ExclusionRules
	}
	if p.ValuesScale != nil {
		row.ValuesScale = *p.ValuesScale
	}
	if p.AnchorExample != nil {
		row.AnchorExample = *p.AnchorExample
	}
	return row
}

// Codebook is the ordered collection of codebook rows.
//
// It is a value type: every operation returns a new Codebook and leaves the
// receiver untouched, so a snapshot handed to an exporter cannot be changed
// by later edits. Operations on unknown IDs are no-ops.
type Codebook struct {
	rows []CodebookRow
}

// NewCodebook builds a codebook holding a copy of rows.
func NewCodebook(rows []CodebookRow) Codebook {
	return Codebook{rows: slices.Clone(rows)}
}

// Rows returns a copy of the rows in order.
func (c Codebook) Rows() []CodebookRow {
	return slices.Clone(c.rows)
}

// Len returns the number of rows.
func (c Codebook) Len() int {
	return len(c.rows)
}

// Get returns the row with the given ID.
func (c Codebook) Get(id string) (CodebookRow, bool) {
	i := c.index(id)
	if i < 0 {
		return CodebookRow{}, false
	}
	return c.rows[i], true
}

// AddManual appends an empty deductive row.
func (c Codebook) AddManual(id string) Codebook {
	rows := make([]CodebookRow, len(c.rows), len(c.rows)+1)
	copy(rows, c.rows)
	return Codebook{rows: append(rows, NewDeductiveRow(id))}
}

// ReplaceDerived replaces the whole collection with derived rows.
func (c Codebook) ReplaceDerived(rows []CodebookRow) Codebook {
	return NewCodebook(rows)
}

// Update merges patch into the row with the given ID.
func (c Codebook) Update(id string, patch RowPatch) Codebook {
	i := c.index(id)
	if i < 0 {
		return c
	}
	rows := slices.Clone(c.rows)
	rows[i] = patch.Apply(rows[i])
	return Codebook{rows: rows}
}

// Delete removes the row with the given ID.
func (c Codebook) Delete(id string) Codebook {
	i := c.index(id)
	if i < 0 {
		return c
	}
	rows := make([]CodebookRow, 0, len(c.rows)-1)
	rows = append(rows, c.rows[:i]...)
	rows = append(rows, c.rows[i+1:]...)
	return Codebook{rows: rows}
}

// Clear returns an empty codebook.
func (c Codebook) Clear() Codebook {
	return Codebook{}
}

func (c Codebook) index(id string) int {
	return slices.IndexFunc(c.rows, func(r CodebookRow) bool { return r.ID == id })
}
