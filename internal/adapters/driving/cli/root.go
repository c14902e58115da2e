// Package cli is the cobra command-line adapter for methodosync.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
	"github.com/simlab-siue/methodosync/internal/logger"
)

var version = "dev"

// Services are the driving ports the commands call.
type Services struct {
	Annotation driving.AnnotationService
	Codebook   driving.CodebookService
	Settings   driving.SettingsService
	Watcher    driven.VaultWatcher
	Templates  driven.TemplateStore
}

// Options are the global flags passed to a Bootstrap.
type Options struct {
	Verbose   bool
	ConfigDir string
	Ephemeral bool
}

// Bootstrap builds the services once global flags are parsed.
// The returned function releases whatever the services hold open.
type Bootstrap func(opts Options) (Services, func() error, error)

var (
	annotationService driving.AnnotationService
	codebookService   driving.CodebookService
	settingsService   driving.SettingsService
	vaultWatcher      driven.VaultWatcher
	templateStore     driven.TemplateStore

	bootstrap Bootstrap
	release   func() error

	globalOpts Options
)

// stdinIsTerminal reports whether stdin is interactive.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "methodosync",
	Short: "Qualitative video coding to quantitative codebooks",
	Long: `methodosync turns timestamped video annotations into Markdown notes
and derives a spreadsheet codebook from those notes.

Phase 1 records annotations against a YouTube video. Phase 2 ingests the
resulting Markdown (or a synthesis document), derives one variable per
category and exports the codebook as an Excel workbook.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "trace pipeline steps to stderr")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.methodosync)")
	flags.BoolVar(&globalOpts.Ephemeral, "ephemeral", false, "keep the session in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services before a
// command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices configures the services directly.
func SetServices(s Services) {
	annotationService = s.Annotation
	codebookService = s.Codebook
	settingsService = s.Settings
	vaultWatcher = s.Watcher
	templateStore = s.Templates
}

// Execute runs the root command and releases bootstrapped services.
func Execute() error {
	err := rootCmd.Execute()
	return errors.Join(err, teardown())
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)
	if bootstrap == nil || release != nil {
		return nil
	}

	svc, closeFn, err := bootstrap(globalOpts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(svc)
	release = closeFn
	if release == nil {
		release = func() error { return nil }
	}
	return nil
}

func teardown() error {
	if release == nil {
		return nil
	}
	err := release()
	release = nil
	return err
}

// printResult prints each announcement of res on its own line.
func printResult(cmd *cobra.Command, res driving.Result) {
	for _, msg := range res.Announcements() {
		cmd.Println(msg)
	}
}

// writeOutput writes content to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func requireAnnotationService() error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	return nil
}

func requireCodebookService() error {
	if codebookService == nil {
		return errors.New("codebook service not configured")
	}
	return nil
}

func requireSettingsService() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}
