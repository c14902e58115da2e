package driven

// TemplateStore provides access to user-editable Markdown templates.
// Implementations may read them from disk or embed them in the binary.
type TemplateStore interface {
	// Load returns the template with the given name. Implementations
	// fall back to a built-in default when no custom copy exists.
	Load(name string) (string, error)

	// Reload clears any cached templates so edits on disk are picked up.
	Reload()

	// Dir returns where custom templates are kept.
	Dir() string
}

// Well-known template names.
const (
	// TemplateSynthesis is the bridge document listing identified
	// categories and overarching themes.
	TemplateSynthesis = "synthesis"
)
