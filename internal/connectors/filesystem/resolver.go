package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath converts a user-supplied location to a clean local path.
// Handles file:// URIs and a leading ~ for the home directory.
func ResolvePath(uri string) string {
	p := strings.TrimPrefix(uri, "file://")
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if p == "" {
		return p
	}
	return filepath.Clean(p)
}

// isMarkdown reports whether path has a .md extension, case-insensitively.
func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
