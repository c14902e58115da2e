package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [label]...",
	Short: "Convert category labels to statistical variable names",
	Long: `Prints the variable name derived from each label: lowercase, with runs
of whitespace and hyphens turned into one underscore and any other
character outside a-z, 0-9 and underscore dropped. A leading digit gets
an underscore prefix; a label with nothing left becomes "variable".`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, label := range args {
			fmt.Fprintln(cmd.OutOrStdout(), domain.SanitizeVariableName(strings.TrimSpace(label)))
		}
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the working session",
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the video, annotations, parsed files and codebook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireAnnotationService(); err != nil {
			return err
		}
		if err := annotationService.Reset(cmdContext(cmd)); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
		cmd.Println("Session cleared.")
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarise the working session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireAnnotationService(); err != nil {
			return err
		}
		s, err := annotationService.Session(cmdContext(cmd))
		if err != nil {
			return err
		}
		video := s.VideoID
		if video == "" {
			video = "(none)"
		}
		cmd.Printf("Video:            %s\n", video)
		cmd.Printf("Annotations:      %d\n", len(s.Annotations))
		cmd.Printf("Axial categories: %d\n", len(s.AxialCategories))
		cmd.Printf("Parsed files:     %d (%d failed)\n",
			len(s.ParsedDocuments), len(domain.FailedDocuments(s.ParsedDocuments)))
		cmd.Printf("Variables:        %d\n", s.Codebook.Len())
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionResetCmd, sessionShowCmd)
	rootCmd.AddCommand(sanitizeCmd, sessionCmd)
}
