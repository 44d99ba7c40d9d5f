package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	deleteTab string
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete [query]",
	Aliases: []string{"rm"},
	Short:   "Delete an installed asset",
	Long: `Delete an installed asset from the game's storage.

Without a query an interactive picker is shown. Folder assets are removed
with everything inside them.

Examples:
  sfs delete
  sfs delete thrust
  sfs rm "Moon Base" --tab worlds
  sfs rm Deutsch --yes`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteTab, "tab", "", "Only consider one tab")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	tab, err := domain.ParseTab(deleteTab)
	if err != nil {
		return err
	}

	// 1. Select Asset
	asset, err := selectAsset(ctx, strings.Join(args, " "), tab)
	if errors.Is(err, errCancelled) {
		fmt.Println(ui.FormatInfo("Operation cancelled."))
		return nil
	}
	if err != nil {
		return reportError("Failed to list assets", err)
	}
	if asset == nil {
		return nil
	}

	// 2. Confirmation
	if !deleteYes && appConfig.ConfirmDelete {
		fmt.Println(ui.FormatWarning(appPrinter.Text("delete.title")))
		fmt.Printf("  %s %s\n", ui.StyleBold.Render(asset.Name),
			ui.StyleMuted.Render("("+appPrinter.Category(asset.Category)+", "+ui.FormatSizeKB(asset.SizeKB)+")"))
		fmt.Println()

		prompt := ui.StyleError.Render(appPrinter.Text("delete.confirm", asset.Name) + " (y/n): ")
		if !confirm(os.Stdin, os.Stdout, prompt) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// 3. Delete
	resp, err := deleteService.Execute(ctx, services.DeleteRequest{Asset: *asset})
	if err != nil {
		return reportError("Delete failed", err)
	}

	if !resp.Gone {
		fmt.Println(ui.FormatWarning(asset.Name + " is still listed after deleting " + resp.Path))
		return nil
	}
	fmt.Println(ui.FormatSuccess(appPrinter.Text("delete.done", asset.Name)))
	return nil
}
