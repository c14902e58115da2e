package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change settings",
	Long:  `View and change methodosync settings stored in config.toml.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Keys:

  session.data_dir     where the session database lives
  ingest.batch_limit   maximum files read per ingest
  export.filename      default spreadsheet file name
  export.sheet_name    worksheet name (max 31 characters)
  watch.debounce       quiet period before re-deriving, e.g. 500ms`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Walk through every setting interactively",
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	values := settingsService.Values()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	section := ""
	for _, key := range domain.SettingKeys() {
		name, field, _ := strings.Cut(key, ".")
		if name != section {
			if section != "" {
				cmd.Println()
			}
			section = name
			cmd.Printf("[%s]\n", strings.ToUpper(name[:1])+name[1:])
		}
		cmd.Printf("  %s: %s\n", field, values[key])
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], settingsService.Values()[args[0]])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	changed := 0
	for _, key := range domain.SettingKeys() {
		current := settingsService.Values()[key]
		for {
			cmd.Printf("%s [%s]: ", key, current)
			input := readLine(reader)
			if input == "" {
				break
			}
			if err := settingsService.Set(key, input); err != nil {
				cmd.Printf("  %v\n", err)
				continue
			}
			changed++
			break
		}
	}

	cmd.Println()
	cmd.Printf("%d setting(s) updated.\n", changed)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
