// Package domain defines the core business entities for methodosync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: A coded moment of a video (phase 1)
//   - ParsedDocument: Categories recovered from an uploaded Markdown file
//   - CodebookRow: One quantitative variable definition (phase 2)
//   - Codebook: The ordered, editable collection of rows
//   - Session: The whole working state, advanced by explicit transitions
//
// It also holds the pure transforms every layer shares: the variable name
// sanitiser and the seven-column codebook table projection.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
