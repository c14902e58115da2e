package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simlab-siue/methodosync/internal/codecs/frontmatter"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

var (
	annotateAt          float64
	annotateObservation string
	annotateCodes       []string
	annotatePasted      string
	annotateAxial       string
	annotateMemo        string
	annotateOut         string

	annotationsJSON bool
	annotationsOut  string
	bridgeOut       string
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Manage the video being annotated",
}

var videoSetCmd = &cobra.Command{
	Use:   "set [url-or-id]",
	Short: "Load a YouTube video by URL or ID",
	Long: `Loads a video for annotation. Accepts youtu.be links, any URL with a
"v" query parameter, or a bare 11-character video ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runVideoSet,
}

var videoShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded video",
	RunE:  runVideoShow,
}

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Save an annotation for the loaded video",
	Long: `Saves one coded moment of the loaded video and prints it as Markdown.

Open codes can be given one at a time with --code, or pasted as a comma or
newline separated list with --codes. Duplicates and blanks are dropped.`,
	Args: cobra.NoArgs,
	RunE: runAnnotate,
}

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "List or export saved annotations",
}

var annotationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List annotations for the loaded video",
	RunE:  runAnnotationsList,
}

var annotationsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all annotations for the loaded video as one Markdown document",
	RunE:  runAnnotationsExport,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List axial categories used so far",
	RunE:  runCategories,
}

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Bridge from annotations to a codebook",
}

var bridgeTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the synthesis template",
	Long: `Writes a Markdown template with identified_categories and
overarching_themes frontmatter. Fill it in and ingest it with
"methodosync codebook ingest".

The template is read from templates/synthesis.md in the config directory,
which is created with the built-in version on first use. Edit that file to
give every new synthesis document your lab's headings.`,
	RunE: runBridgeTemplate,
}

func init() {
	annotateCmd.Flags().Float64Var(&annotateAt, "at", 0, "playback position in seconds")
	annotateCmd.Flags().StringVarP(&annotateObservation, "observation", "o", "", "what happens at this moment")
	annotateCmd.Flags().StringArrayVarP(&annotateCodes, "code", "c", nil, "open code (repeatable)")
	annotateCmd.Flags().StringVar(&annotatePasted, "codes", "", "comma or newline separated open codes")
	annotateCmd.Flags().StringVarP(&annotateAxial, "axial", "a", "", "axial category")
	annotateCmd.Flags().StringVarP(&annotateMemo, "memo", "m", "", "analytical memo")
	annotateCmd.Flags().StringVar(&annotateOut, "out", "", "write the Markdown to a file or directory")
	_ = annotateCmd.MarkFlagRequired("at")

	annotationsListCmd.Flags().BoolVar(&annotationsJSON, "json", false, "output as JSON")
	annotationsExportCmd.Flags().StringVar(&annotationsOut, "out", "", "write to a file or directory")
	bridgeTemplateCmd.Flags().StringVar(&bridgeOut, "out", "", "write to a file or directory")

	videoCmd.AddCommand(videoSetCmd, videoShowCmd)
	annotationsCmd.AddCommand(annotationsListCmd, annotationsExportCmd)
	bridgeCmd.AddCommand(bridgeTemplateCmd)
	rootCmd.AddCommand(videoCmd, annotateCmd, annotationsCmd, categoriesCmd, bridgeCmd)
}

func runVideoSet(cmd *cobra.Command, args []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}
	res, err := annotationService.SetVideo(cmdContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("set video: %w", err)
	}
	printResult(cmd, res)
	cmd.Printf("Video: %s\n", res.Session.VideoID)
	return nil
}

func runVideoShow(cmd *cobra.Command, _ []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}
	session, err := annotationService.Session(cmdContext(cmd))
	if err != nil {
		return err
	}
	if session.VideoID == "" {
		cmd.Println("No video loaded.")
		return nil
	}
	cmd.Printf("Video: %s (%d annotations)\n",
		session.VideoID, len(session.AnnotationsForVideo(session.VideoID)))
	return nil
}

func runAnnotate(cmd *cobra.Command, _ []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}

	var codes []string
	for _, c := range annotateCodes {
		codes = domain.CommitOpenCode(codes, c)
	}
	codes = domain.PasteOpenCodes(codes, annotatePasted)

	res, err := annotationService.SaveAnnotation(cmdContext(cmd), domain.Draft{
		Timestamp:       annotateAt,
		ObservationText: annotateObservation,
		OpenCodes:       codes,
		AxialCategory:   annotateAxial,
		AnalyticalMemo:  annotateMemo,
	})
	if err != nil {
		return fmt.Errorf("save annotation: %w", err)
	}
	printResult(cmd, res)

	session := res.Session
	return writeDocument(cmd, annotateOut, session.LastMarkdownFilename(), session.LastMarkdown)
}

func runAnnotationsList(cmd *cobra.Command, _ []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}
	session, err := annotationService.Session(cmdContext(cmd))
	if err != nil {
		return err
	}
	annotations := session.AnnotationsForVideo(session.VideoID)

	if annotationsJSON {
		if annotations == nil {
			annotations = []domain.Annotation{}
		}
		return outputJSON(cmd, annotations)
	}

	if len(annotations) == 0 {
		cmd.Println("No annotations saved.")
		return nil
	}

	rows := make([][]string, 0, len(annotations))
	for i, a := range annotations {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			frontmatter.FormatTimestamp(a.Timestamp),
			truncate(a.ObservationText, 48),
			truncate(joinCodes(a.OpenCodes), 32),
			domain.StripWikiLink(a.AxialCategory),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"#", "Time", "Observation", "Open codes", "Axial category"},
		rows,
		[]columnAlignment{alignRight, alignRight},
	))
	return nil
}

func runAnnotationsExport(cmd *cobra.Command, _ []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}
	ctx := cmdContext(cmd)
	markdown, err := annotationService.ExportSession(ctx)
	if err != nil {
		return fmt.Errorf("export annotations: %w", err)
	}
	session, err := annotationService.Session(ctx)
	if err != nil {
		return err
	}
	return writeDocument(cmd, annotationsOut, session.SessionFilename(), markdown)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}
	session, err := annotationService.Session(cmdContext(cmd))
	if err != nil {
		return err
	}
	if len(session.AxialCategories) == 0 {
		cmd.Println("No axial categories yet.")
		return nil
	}
	for _, c := range session.AxialCategories {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}

func runBridgeTemplate(cmd *cobra.Command, _ []string) error {
	content := frontmatter.SynthesisTemplate
	if templateStore != nil {
		tmpl, err := templateStore.Load(driven.TemplateSynthesis)
		if err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
		content = tmpl
	}
	return writeDocument(cmd, bridgeOut, frontmatter.SynthesisTemplateFilename, content)
}

// writeDocument writes content to out. An existing directory receives
// the file under defaultName; an empty out prints to stdout.
func writeDocument(cmd *cobra.Command, out, defaultName, content string) error {
	path := out
	if info, err := os.Stat(out); out != "" && err == nil && info.IsDir() {
		path = filepath.Join(out, defaultName)
	}
	err := writeOutput(cmd, path, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
	if err != nil {
		return err
	}
	if path != "" && path != "-" {
		cmd.Printf("Wrote %s\n", path)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
