// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (~/.methodosync/config.toml)
//   - TemplateStore: user-editable Markdown templates (~/.methodosync/templates)
package file
