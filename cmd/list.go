package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	listTab     string
	listSortBy  string
	listReverse bool
	listJSON    bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list [query]",
	Short:   "List installed assets",
	Aliases: []string{"ls"},
	Long: `List installed assets with their type and size.

Tabs group assets the way the game's asset browser does:
  all, blueprints, mods, worlds, solar-systems, translations

Examples:
  sfs list
  sfs list --tab mods
  sfs list --sort size --reverse
  sfs ls rocket
  sfs list --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTab, "tab", "", "Only show one tab (blueprints, mods, worlds, solar-systems, translations)")
	// Sort defaults to the config value, see runList
	listCmd.Flags().StringVar(&listSortBy, "sort", services.SortNone, "Sort by field (none, name, size, type)")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "Reverse sort order")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print assets as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	tab, err := domain.ParseTab(listTab)
	if err != nil {
		return err
	}

	// If the flag was NOT changed by the user, use the config default
	if !cmd.Flags().Changed("sort") {
		listSortBy = appConfig.DefaultSort
	}
	if !cmd.Flags().Changed("reverse") {
		listReverse = appConfig.ReverseSort
	}

	req := services.ListRequest{
		Tab:     tab,
		Query:   strings.Join(args, " "),
		SortBy:  listSortBy,
		Reverse: listReverse,
	}

	resp, err := listService.Execute(getContext(), req)
	if err != nil {
		return reportError("Failed to list assets", err)
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		assets := resp.Assets
		if assets == nil {
			assets = []domain.Asset{}
		}
		return enc.Encode(assets)
	}

	// Handle empty results
	if resp.Total == 0 {
		if req.Query != "" {
			fmt.Println(ui.FormatWarning("No assets found matching: " + req.Query))
		} else {
			fmt.Println(ui.FormatWarning(appPrinter.Text("list.empty")))
			fmt.Println(ui.FormatInfo("Install your first asset with: sfs install <type> <path>"))
		}
		return nil
	}

	fmt.Println(ui.FormatTitle(appPrinter.Tab(tab)))
	fmt.Println()

	fmt.Print(renderAssetTable(resp.Assets))
	fmt.Println()

	// Print summary
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets, %s", resp.Total, ui.FormatSizeKB(resp.TotalKB))))

	return nil
}

// renderAssetTable renders assets with localized type labels
func renderAssetTable(assets []domain.Asset) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 20},
		{Header: "Type", Width: 12},
		{Header: "Size", Width: 8, Align: lipgloss.Right},
	})
	if appConfig != nil {
		table.MaxWidth = appConfig.TableWidth
	}

	for _, a := range assets {
		table.AddRow([]string{
			a.Name,
			ui.CategoryStyle(a.Category.Key()).Render(appPrinter.Category(a.Category)),
			ui.FormatSizeKB(a.SizeKB),
		})
	}
	return table.Render()
}
