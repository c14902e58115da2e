package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/adapters/driven/export/xlsx"
	"github.com/simlab-siue/methodosync/internal/adapters/driven/storage/memory"
	"github.com/simlab-siue/methodosync/internal/codecs/frontmatter"
	"github.com/simlab-siue/methodosync/internal/connectors/filesystem"
	"github.com/simlab-siue/methodosync/internal/core/services"
)

// testServices holds the real services wired over in-memory stores.
type testServices struct {
	annotation *services.AnnotationService
	codebook   *services.CodebookService
	settings   *services.SettingsService
}

// setupTestServices configures the command globals for one test and
// restores them, and every flag, when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	prev := Services{
		Annotation: annotationService,
		Codebook:   codebookService,
		Settings:   settingsService,
		Watcher:    vaultWatcher,
		Templates:  templateStore,
	}
	prevBootstrap, prevRelease := bootstrap, release
	bootstrap, release = nil, nil

	clock := func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	codec := frontmatter.New(frontmatter.WithClock(clock))
	transitions := services.NewTransitions(codec, nil)
	workspace := services.NewWorkspace(memory.NewSessionStore())

	ts := &testServices{
		annotation: services.NewAnnotationService(workspace, transitions, codec),
		codebook: services.NewCodebookService(
			workspace, transitions, codec,
			filesystem.NewReader(0),
			xlsx.New(),
		),
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(Services{
		Annotation: ts.annotation,
		Codebook:   ts.codebook,
		Settings:   ts.settings,
		Watcher:    filesystem.NewWatcher(10 * time.Millisecond),
	})

	t.Cleanup(func() {
		SetServices(prev)
		bootstrap, release = prevBootstrap, prevRelease
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetContext(context.Background())
	})
	return ts
}

// resetFlags returns every flag in the tree to its default so one test's
// flags do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	resetFlags(rootCmd)
	return buf.String(), err
}

// writeNote writes a Markdown note under dir and returns its path.
func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// lines splits output into trimmed non-empty lines.
func lines(out string) []string {
	var result []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			result = append(result, l)
		}
	}
	return result
}
