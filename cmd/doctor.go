package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/fsutil"
	"github.com/kamal-hamza/sfs-cli/pkg/logging"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your sfs setup",
	Long: `Diagnose issues with your SFS setup.

Checks for:
  - Game storage directory and its asset folders
  - Write access to the storage directory
  - Configuration and log files
  - Whether the asset folders can be scanned`,
	Run: runDoctor,
}

// errWarning marks a check result that is not a failure
var errWarning = errors.New("warning")

func warnf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errWarning}, args...)...)
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 SFS Doctor"))
	fmt.Println()

	// 1. Check Storage Structure
	rootOK := checkStep("Storage Directory", func() error {
		if !appLayout.Exists() {
			return fmt.Errorf("not found at %s (use --root or 'sfs init')", appLayout.RootPath)
		}
		return nil
	})

	for _, d := range appLayout.Directories() {
		checkStep(appPrinter.Category(d.Category)+" Folder", func() error {
			info, err := os.Stat(d.Path)
			if os.IsNotExist(err) {
				// Created on first install
				return warnf("%w at %s", domain.ErrCategoryDirectoryMissing, d.Path)
			}
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", d.Path)
			}
			return nil
		})
	}

	if rootOK {
		checkStep("Write Access", func() error {
			f, err := os.CreateTemp(appLayout.RootPath, ".sfs-doctor-*")
			if err != nil {
				return fmt.Errorf("cannot write to %s: %w", appLayout.RootPath, err)
			}
			name := f.Name()
			f.Close()
			return os.Remove(name)
		})
	}

	checkStep("Staging Leftovers", func() error {
		count := 0
		for _, d := range appLayout.Directories() {
			found, err := fsutil.FindStaging(d.Path)
			if err != nil {
				return err
			}
			count += len(found)
		}
		if count > 0 {
			return warnf("%d entries from interrupted installs (run 'sfs clean')", count)
		}
		return nil
	})

	// 2. Check Config
	checkStep("Configuration File", func() error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return warnf("missing at %s (defaults in use, run 'sfs init')", path)
		}
		return nil
	})

	checkStep("Log File", func() error {
		path := logging.LatestPath()
		if path == "" {
			return warnf("file logging is disabled")
		}
		fmt.Println(ui.FormatMuted("    " + path))
		return nil
	})

	// 3. Check Environment
	checkStep("EDITOR Variable", func() error {
		if os.Getenv("VISUAL") == "" && os.Getenv("EDITOR") == "" {
			return warnf("not set (using fallback 'vi')")
		}
		return nil
	})

	fmt.Println()
	fmt.Println(ui.FormatInfo("Scanning assets..."))

	checkStep("Asset Scan", func() error {
		resp, err := listService.Execute(getContext(), services.ListRequest{})
		if err != nil {
			return err
		}
		fmt.Println(ui.FormatMuted(fmt.Sprintf("    %d assets, %s", resp.Total, ui.FormatSizeKB(resp.TotalKB))))
		return nil
	})
}

// checkStep runs a check function and prints the result nicely.
// It reports whether the check passed; warnings count as passed.
func checkStep(name string, check func() error) bool {
	err := check()
	switch {
	case err == nil:
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
		return true
	case errors.Is(err, errWarning):
		fmt.Printf("%s %s\n", ui.StyleWarning.Render(ui.IconWarning), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
		return true
	default:
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
		return false
	}
}
