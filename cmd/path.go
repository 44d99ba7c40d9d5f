package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	pathTab  string
	pathCopy bool
)

var pathCmd = &cobra.Command{
	Use:   "path [query]",
	Short: "Print where an asset is stored",
	Long: `Print the on-disk location of an installed asset.

Examples:
  sfs path thrust
  sfs path "Moon Base" --copy
  cd "$(sfs path Rocket)"`,
	RunE: runPath,
}

func init() {
	pathCmd.Flags().StringVar(&pathTab, "tab", "", "Only consider one tab")
	pathCmd.Flags().BoolVarP(&pathCopy, "copy", "c", false, "Copy the path to the clipboard")
}

func runPath(cmd *cobra.Command, args []string) error {
	tab, err := domain.ParseTab(pathTab)
	if err != nil {
		return err
	}

	asset, err := selectAsset(getContext(), strings.Join(args, " "), tab)
	if errors.Is(err, errCancelled) {
		return nil
	}
	if err != nil {
		return reportError("Failed to list assets", err)
	}
	if asset == nil {
		return nil
	}

	path, err := assetRepo.Path(*asset)
	if err != nil {
		return reportError("Cannot resolve path", err)
	}

	// Plain output so it can be used in shell substitution
	fmt.Println(path)

	if pathCopy {
		if err := clipboard.WriteAll(path); err != nil {
			fmt.Fprintln(os.Stderr, ui.FormatWarning("Clipboard unavailable: "+err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, ui.FormatSuccess("Copied to clipboard"))
		}
	}
	return nil
}
