package domain

import "fmt"

// ParseErrorKind classifies why a document could not be decoded.
type ParseErrorKind string

// Decode failure kinds.
const (
	// ParseErrorNoFrontmatter means no leading "---" delimited block was found.
	ParseErrorNoFrontmatter ParseErrorKind = "no_frontmatter"

	// ParseErrorNotObject means the frontmatter parsed to something other than a mapping.
	ParseErrorNotObject ParseErrorKind = "not_an_object"

	// ParseErrorSyntax means the frontmatter was not valid YAML.
	ParseErrorSyntax ParseErrorKind = "parse_error"

	// ParseErrorUnreadable means the file itself could not be read.
	ParseErrorUnreadable ParseErrorKind = "unreadable"
)

// ParseError describes a per-document decode failure.
// It is carried as a value on ParsedDocument, never returned up the stack.
type ParseError struct {
	Kind    ParseErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// NewParseError builds a ParseError with the user-facing message for kind.
// detail is appended for syntax and read failures.
func NewParseError(kind ParseErrorKind, detail string) *ParseError {
	var msg string
	switch kind {
	case ParseErrorNoFrontmatter:
		msg = "No YAML frontmatter found. Ensure the file begins with --- on the first line."
	case ParseErrorNotObject:
		msg = "Frontmatter did not parse to a valid object."
	case ParseErrorSyntax:
		if detail == "" {
			detail = "Unknown YAML parse error."
		}
		msg = fmt.Sprintf("YAML parse error: %s", detail)
	case ParseErrorUnreadable:
		msg = "File could not be read."
		if detail != "" {
			msg = fmt.Sprintf("File could not be read: %s", detail)
		}
	default:
		msg = detail
	}
	return &ParseError{Kind: kind, Message: msg}
}

// ParsedDocument holds the categories recovered from one Markdown file.
//
// Exactly one of ParseError or the category fields is meaningful. A nil
// slice means the key was absent or had the wrong shape; a non-nil empty
// slice means the key was present with no usable entries.
type ParsedDocument struct {
	// Filename is the name the document was uploaded or pasted under.
	Filename string `json:"filename"`

	// AxialCategory is the single phase 1 category, wiki-link stripped.
	AxialCategory string `json:"axial_category,omitempty"`

	// IdentifiedCategories come from the bridge synthesis template.
	IdentifiedCategories []string `json:"identified_categories,omitempty"`

	// OverarchingThemes are broader themes from the synthesis template.
	OverarchingThemes []string `json:"overarching_themes,omitempty"`

	// ParseError is set when decoding failed.
	ParseError *ParseError `json:"parse_error,omitempty"`
}

// Failed reports whether the document could not be decoded.
func (d *ParsedDocument) Failed() bool {
	return d.ParseError != nil
}

// Candidates returns the document's category strings in derivation order:
// axial category, then identified categories, then overarching themes.
// Failed documents have no candidates.
func (d *ParsedDocument) Candidates() []string {
	if d.Failed() {
		return nil
	}
	out := make([]string, 0, 1+len(d.IdentifiedCategories)+len(d.OverarchingThemes))
	if d.AxialCategory != "" {
		out = append(out, d.AxialCategory)
	}
	out = append(out, d.IdentifiedCategories...)
	return append(out, d.OverarchingThemes...)
}

// FailedDocuments returns the documents that carry a ParseError, in order.
func FailedDocuments(docs []ParsedDocument) []ParsedDocument {
	var failed []ParsedDocument
	for i := range docs {
		if docs[i].Failed() {
			failed = append(failed, docs[i])
		}
	}
	return failed
}
