package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func names(files []driven.VaultFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestNewReader(t *testing.T) {
	assert.Equal(t, domain.DefaultBatchLimit, NewReader(0).batchLimit)
	assert.Equal(t, domain.DefaultBatchLimit, NewReader(-3).batchLimit)
	assert.Equal(t, 7, NewReader(7).batchLimit)
}

func TestReader_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("reads named Markdown files", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.md", "alpha")
		b := writeFile(t, dir, "b.MD", "beta")

		files, err := NewReader(0).Read(ctx, b, a)

		require.NoError(t, err)
		assert.Equal(t, []string{"b.MD", "a.md"}, names(files))
		assert.Equal(t, "beta", string(files[0].Content))
		assert.Equal(t, a, files[1].Path)
		assert.NoError(t, files[1].Err)
	})

	t.Run("walks directories in lexical order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "z.md", "z")
		writeFile(t, dir, "notes/m.md", "m")
		writeFile(t, dir, "a.md", "a")
		writeFile(t, dir, "image.png", "png")

		files, err := NewReader(0).Read(ctx, dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.md", "m.md", "z.md"}, names(files))
	})

	t.Run("skips hidden directories and files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".obsidian/workspace.md", "x")
		writeFile(t, dir, ".draft.md", "x")
		writeFile(t, dir, "visible.md", "v")

		files, err := NewReader(0).Read(ctx, dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"visible.md"}, names(files))
	})

	t.Run("deduplicates overlapping paths", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.md", "a")

		files, err := NewReader(0).Read(ctx, a, dir, a)

		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("ignores named non-Markdown files", func(t *testing.T) {
		dir := t.TempDir()
		txt := writeFile(t, dir, "notes.txt", "x")
		md := writeFile(t, dir, "notes.md", "x")

		files, err := NewReader(0).Read(ctx, txt, md)

		require.NoError(t, err)
		assert.Equal(t, []string{"notes.md"}, names(files))
	})

	t.Run("missing Markdown file is reported per file", func(t *testing.T) {
		dir := t.TempDir()
		ok := writeFile(t, dir, "ok.md", "ok")
		missing := filepath.Join(dir, "missing.md")

		files, err := NewReader(0).Read(ctx, ok, missing)

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.NoError(t, files[0].Err)
		assert.Error(t, files[1].Err)
		assert.Nil(t, files[1].Content)
		assert.Equal(t, "missing.md", files[1].Name)
	})

	t.Run("no Markdown selected is an error", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "x")

		files, err := NewReader(0).Read(ctx, dir, filepath.Join(dir, "nope"))

		assert.ErrorIs(t, err, domain.ErrNoDocuments)
		assert.Contains(t, err.Error(), "no .md files found")
		assert.Nil(t, files)
	})

	t.Run("no paths is an error", func(t *testing.T) {
		_, err := NewReader(0).Read(ctx)
		assert.ErrorIs(t, err, domain.ErrNoDocuments)
	})

	t.Run("batch limit truncates the selection", func(t *testing.T) {
		dir := t.TempDir()
		for _, n := range []string{"a.md", "b.md", "c.md"} {
			writeFile(t, dir, n, n)
		}

		files, err := NewReader(2).Read(ctx, dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.md", "b.md"}, names(files))
	})

	t.Run("cancelled context stops reading", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.md", "a")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewReader(0).Read(cctx, dir)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("file URI is accepted", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.md", "a")

		files, err := NewReader(0).Read(ctx, "file://"+a)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.md"}, names(files))
	})
}
