package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

var (
	codebookListJSON  bool
	codebookExportOut string
)

var codebookCmd = &cobra.Command{
	Use:   "codebook",
	Short: "Derive, edit and export the codebook",
}

var codebookIngestCmd = &cobra.Command{
	Use:   "ingest [file|dir|-]...",
	Short: "Parse Markdown files and derive codebook variables",
	Long: `Parses the YAML frontmatter of each Markdown file, adds the results to
the session and re-derives the codebook. Directories are searched
recursively for .md files. Use "-" to read pasted Markdown from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCodebookIngest,
}

var codebookFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List parsed files and their errors",
	RunE:  runCodebookFiles,
}

var codebookDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Rebuild the codebook from parsed files",
	RunE:  runCodebookDerive,
}

var codebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show codebook variables",
	RunE:  runCodebookList,
}

var codebookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty deductive variable",
	Long: `Adds a manually authored variable. Any field flag given is applied to
the new row straight away.`,
	Args: cobra.NoArgs,
	RunE: runCodebookAdd,
}

var codebookUpdateCmd = &cobra.Command{
	Use:   "update [row-id]",
	Short: "Edit fields of a variable",
	Args:  cobra.ExactArgs(1),
	RunE:  runCodebookUpdate,
}

var codebookDeleteCmd = &cobra.Command{
	Use:   "delete [row-id]",
	Short: "Delete a variable",
	Args:  cobra.ExactArgs(1),
	RunE:  runCodebookDelete,
}

var codebookResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear parsed files and the codebook",
	RunE:  runCodebookReset,
}

var codebookExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the codebook as an Excel workbook",
	RunE:  runCodebookExport,
}

var codebookWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-derive the codebook whenever notes in a directory change",
	Long: `Parses every .md file under dir, then watches the directory and
re-derives the codebook after each burst of edits. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runCodebookWatch,
}

// fieldFlag turns a row field into its flag name: variable_name -> variable-name.
func fieldFlag(f domain.RowField) string {
	return strings.ReplaceAll(string(f), "_", "-")
}

func addFieldFlags(cmd *cobra.Command) {
	for _, f := range domain.EditableFields() {
		cmd.Flags().String(fieldFlag(f), "", fmt.Sprintf("set %s", strings.ReplaceAll(string(f), "_", " ")))
	}
}

// patchFromFlags collects the field flags that were set on cmd.
func patchFromFlags(cmd *cobra.Command) (domain.RowPatch, error) {
	var patch domain.RowPatch
	for _, f := range domain.EditableFields() {
		name := fieldFlag(f)
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return patch, err
		}
		if err := patch.Set(f, v); err != nil {
			return patch, err
		}
	}
	return patch, nil
}

func init() {
	codebookListCmd.Flags().BoolVar(&codebookListJSON, "json", false, "output as JSON")
	codebookExportCmd.Flags().StringVar(&codebookExportOut, "out", "", "output file or directory (default from settings)")
	addFieldFlags(codebookAddCmd)
	addFieldFlags(codebookUpdateCmd)

	codebookCmd.AddCommand(
		codebookIngestCmd,
		codebookFilesCmd,
		codebookDeriveCmd,
		codebookListCmd,
		codebookAddCmd,
		codebookUpdateCmd,
		codebookDeleteCmd,
		codebookResetCmd,
		codebookExportCmd,
		codebookWatchCmd,
	)
	rootCmd.AddCommand(codebookCmd)
}

func runCodebookIngest(cmd *cobra.Command, args []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	ctx := cmdContext(cmd)

	paths := slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == "-" })
	if len(paths) > 0 {
		res, err := codebookService.Ingest(ctx, paths...)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		printResult(cmd, res)
	}

	if len(paths) < len(args) {
		content, err := readPasted(cmd)
		if err != nil {
			return err
		}
		res, err := codebookService.IngestText(ctx, "", content)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		cmd.Println("Markdown parsed. Codebook rows generated.")
		printResult(cmd, res)
	}
	return nil
}

// readPasted reads stdin, refusing an interactive terminal.
func readPasted(cmd *cobra.Command) (string, error) {
	if cmd.InOrStdin() == os.Stdin && stdinIsTerminal() {
		return "", errors.New("no input piped to stdin; pipe Markdown in, e.g. pbpaste | methodosync codebook ingest -")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func runCodebookFiles(cmd *cobra.Command, _ []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}
	session, err := annotationService.Session(cmdContext(cmd))
	if err != nil {
		return err
	}
	if len(session.ParsedDocuments) == 0 {
		cmd.Println("No files parsed.")
		return nil
	}

	rows := make([][]string, 0, len(session.ParsedDocuments))
	for i := range session.ParsedDocuments {
		doc := &session.ParsedDocuments[i]
		status := fmt.Sprintf("%d categories", len(doc.Candidates()))
		if doc.Failed() {
			status = doc.ParseError.Message
		}
		rows = append(rows, []string{doc.Filename, status})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"File", "Result"}, rows, nil))
	return nil
}

func runCodebookDerive(cmd *cobra.Command, _ []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	res, err := codebookService.Derive(cmdContext(cmd))
	if err != nil {
		return fmt.Errorf("derive: %w", err)
	}
	printResult(cmd, res)
	return nil
}

func runCodebookList(cmd *cobra.Command, _ []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	rows, err := codebookService.Rows(cmdContext(cmd))
	if err != nil {
		return err
	}

	if codebookListJSON {
		if rows == nil {
			rows = []domain.CodebookRow{}
		}
		return outputJSON(cmd, rows)
	}

	if len(rows) == 0 {
		cmd.Println("Codebook is empty.")
		return nil
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			shortID(r.ID),
			r.Source.String(),
			r.VariableName,
			truncate(r.VariableLabel, 30),
			truncate(r.DefinitionText, 40),
			truncate(r.ValuesScale, 24),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Source", "Variable Name", "Variable Label", "Definition", "Values / Scale"},
		out,
		nil,
	))
	return nil
}

// shortID abbreviates UUIDs for display; update and delete accept a prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveRowID expands a unique ID prefix to the full row ID.
func resolveRowID(cmd *cobra.Command, prefix string) (string, error) {
	rows, err := codebookService.Rows(cmdContext(cmd))
	if err != nil {
		return "", err
	}
	var match string
	for _, r := range rows {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: row id %q is ambiguous", domain.ErrInvalidInput, prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return prefix, nil
	}
	return match, nil
}

func runCodebookAdd(cmd *cobra.Command, _ []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	ctx := cmdContext(cmd)

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	row, res, err := codebookService.AddRow(ctx)
	if err != nil {
		return fmt.Errorf("add variable: %w", err)
	}
	printResult(cmd, res)

	if !patch.IsEmpty() {
		if _, err := codebookService.UpdateRow(ctx, row.ID, patch); err != nil {
			return fmt.Errorf("update variable: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), row.ID)
	return nil
}

func runCodebookUpdate(cmd *cobra.Command, args []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	id, err := resolveRowID(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := codebookService.UpdateRow(cmdContext(cmd), id, patch)
	if err != nil {
		return fmt.Errorf("update variable: %w", err)
	}
	printResult(cmd, res)
	cmd.Printf("Updated variable: %s\n", shortID(id))
	return nil
}

func runCodebookDelete(cmd *cobra.Command, args []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	id, err := resolveRowID(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := codebookService.DeleteRow(cmdContext(cmd), id)
	if err != nil {
		return fmt.Errorf("delete variable: %w", err)
	}
	printResult(cmd, res)
	return nil
}

func runCodebookReset(cmd *cobra.Command, _ []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	res, err := codebookService.Reset(cmdContext(cmd))
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}

func runCodebookExport(cmd *cobra.Command, _ []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}

	path := codebookExportOut
	filename := domain.DefaultExportFilename
	if settingsService != nil {
		filename = settingsService.Get().ExportFilename
	}
	if path == "" {
		path = filename
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, filename)
	}

	cmd.Println("Generating Excel workbook…")
	err := writeOutput(cmd, path, func(w io.Writer) error {
		res, err := codebookService.Export(cmdContext(cmd), w)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if path != "-" {
		cmd.Printf("Wrote %s\n", path)
	}
	return nil
}

func runCodebookWatch(cmd *cobra.Command, args []string) error {
	if err := requireCodebookService(); err != nil {
		return err
	}
	if vaultWatcher == nil {
		return errors.New("vault watcher not configured")
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	dir := args[0]
	events, err := vaultWatcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	resync := func() {
		res, err := codebookService.Sync(ctx, dir)
		if err != nil {
			cmd.PrintErrf("sync failed: %v\n", err)
			return
		}
		printResult(cmd, res)
	}

	resync()
	cmd.Printf("Watching %s for changes (Ctrl-C to stop)\n", dir)
	for ev := range events {
		cmd.Printf("%d file(s) changed\n", len(ev.Paths))
		resync()
	}
	return nil
}
