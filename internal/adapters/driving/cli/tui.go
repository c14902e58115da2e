package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui"
)

// stdoutIsTerminal reports whether stdout is interactive.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runProgram runs a bubbletea model. Replaced in tests.
var runProgram = func(cmd *cobra.Command, app *tui.App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmdContext(cmd)))
	_, err := p.Run()
	return err
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive codebook editor",
	Long: `Launch the interactive terminal user interface for methodosync.

The TUI lists the codebook, lets you edit each variable's definition and
coding rules, add or delete variables, re-derive from parsed notes and
export the Excel workbook.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Edit
  Esc      - Back / Cancel
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	if !stdoutIsTerminal() {
		return errors.New("tui requires an interactive terminal")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(codebookService, annotationService, settingsService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmdContext(cmd))

	if err := runProgram(cmd, app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
