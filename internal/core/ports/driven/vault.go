package driven

import "context"

// VaultFile is one Markdown file read from disk or stdin.
// Err is set when the file was selected but could not be read.
type VaultFile struct {
	Name    string
	Path    string
	Content []byte
	Err     error
}

// VaultReader collects Markdown files from files and directories.
type VaultReader interface {
	// Read expands paths into Markdown files and reads them. Files that
	// cannot be read are returned with Err set rather than aborting the
	// batch. Returns an error only when nothing could be selected.
	Read(ctx context.Context, paths ...string) ([]VaultFile, error)
}

// VaultEvent reports that Markdown files under a watched directory changed.
type VaultEvent struct {
	// Paths are the changed files, deduplicated within one debounce window.
	Paths []string
}

// VaultWatcher reports Markdown changes under a directory.
type VaultWatcher interface {
	// Watch starts watching dir. The returned channel is closed when ctx
	// is cancelled.
	Watch(ctx context.Context, dir string) (<-chan VaultEvent, error)
}
