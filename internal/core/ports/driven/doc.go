// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - AnnotationEncoder: Renders annotations as frontmatter Markdown
//   - DocumentDecoder: Parses frontmatter Markdown into category records
//   - SessionStore: Session persistence (SQLite or memory)
//   - VaultReader: Selects and reads Markdown files for ingestion
//   - VaultWatcher: Reports Markdown changes in a vault directory
//   - TableExporter: Writes the codebook spreadsheet
//   - ConfigStore: Application configuration
//   - TemplateStore: User-editable Markdown templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or codec package
package driven
