package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/pkg/fsutil"
	"github.com/kamal-hamza/sfs-cli/pkg/layout"
	"github.com/kamal-hamza/sfs-cli/pkg/logging"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	cleanDryRun bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove leftovers of interrupted installs and old logs",
	Long: `Remove staging entries (.sfs-stage-*) that an interrupted install left
in the asset folders, and log files older than log_retention_days.

Examples:
  sfs clean
  sfs clean --dry-run`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanDryRun, "dry-run", "n", false, "Only show what would be removed")
}

func runClean(cmd *cobra.Command, args []string) error {
	total := 0

	for _, d := range appLayout.Directories() {
		var paths []string
		var err error
		if cleanDryRun {
			paths, err = fsutil.FindStaging(d.Path)
		} else {
			paths, err = fsutil.CleanStaging(d.Path)
		}
		for _, p := range paths {
			fmt.Println(ui.FormatMuted("  " + p))
		}
		total += len(paths)
		if err != nil {
			return reportError("Failed to clean "+d.Path, err)
		}
	}

	verb := "Removed"
	if cleanDryRun {
		verb = "Would remove"
	}
	if total == 0 {
		fmt.Println(ui.FormatSuccess("No staging leftovers found"))
	} else {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s %d staging entries", verb, total)))
	}

	if cleanDryRun {
		return nil
	}

	dataDir, err := layout.DataDir()
	if err != nil {
		return nil
	}
	removed, err := logging.Cleanup(filepath.Join(dataDir, "logs"), appConfig.LogRetentionDays, time.Now())
	if err != nil {
		fmt.Println(ui.FormatWarning("Failed to clean logs: " + err.Error()))
		return nil
	}
	if removed > 0 {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Removed %d old log files", removed)))
	}
	return nil
}
