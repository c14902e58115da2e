package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.VaultReader = (*Reader)(nil)

// Reader selects and reads Markdown files from local paths.
type Reader struct {
	batchLimit int
}

// NewReader creates a reader that reads at most batchLimit files per call.
// A non-positive limit means domain.DefaultBatchLimit.
func NewReader(batchLimit int) *Reader {
	if batchLimit <= 0 {
		batchLimit = domain.DefaultBatchLimit
	}
	return &Reader{batchLimit: batchLimit}
}

// Read expands paths into .md files and reads each one.
// Directories are walked recursively, skipping hidden entries, and their
// files are taken in lexical order. Explicitly named non-Markdown files
// are ignored. A named .md file that cannot be read is returned with Err
// set.
func (r *Reader) Read(ctx context.Context, paths ...string) ([]driven.VaultFile, error) {
	selected, err := r.selectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no .md files found, please provide Markdown files", domain.ErrNoDocuments)
	}
	if len(selected) > r.batchLimit {
		logger.Warn("selected %d files, reading the first %d", len(selected), r.batchLimit)
		selected = selected[:r.batchLimit]
	}

	files := make([]driven.VaultFile, 0, len(selected))
	for _, path := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := driven.VaultFile{Name: filepath.Base(path), Path: path}
		f.Content, f.Err = os.ReadFile(path)
		if f.Err != nil {
			f.Content = nil
		}
		files = append(files, f)
	}
	logger.Debug("read %d files", len(files))
	return files, nil
}

// selectFiles resolves paths to a deduplicated, ordered list of .md files.
func (r *Reader) selectFiles(ctx context.Context, paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, raw := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := ResolvePath(raw)
		if path == "" {
			continue
		}

		info, err := os.Stat(path)
		switch {
		case err != nil && isMarkdown(path):
			// Keep it so the caller can report the file as unreadable.
			add(path)
		case err != nil:
			logger.Warn("skipping %s: %v", raw, err)
		case info.IsDir():
			found, err := walkMarkdown(path)
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", raw, err)
			}
			for _, p := range found {
				add(p)
			}
		case isMarkdown(path):
			add(path)
		default:
			logger.Debug("skipping non-Markdown file %s", raw)
		}
	}
	return out, nil
}

func walkMarkdown(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) && path != root {
				logger.Warn("skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}

		rel, _ := filepath.Rel(root, path)
		if isHidden(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && isMarkdown(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(found)
	return found, nil
}
