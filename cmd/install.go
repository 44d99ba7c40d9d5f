package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	installName    string
	installExtract bool
)

var installCmd = &cobra.Command{
	Use:   "install <type> <source>",
	Short: "Install an asset into the game's storage",
	Long: `Copy a file or folder into the directory the game loads that asset type from.

Types: ` + strings.Join(domain.CategoryKeys(), ", ") + `

Part packs and translations are single files; the .pack / .txt suffix is
added when missing. Blueprints, texture packs, worlds and solar systems are
folders. Use --extract to unpack a .zip into a folder asset.

An existing asset with the same name is replaced.

Examples:
  sfs install part ./thrust.pack
  sfs install translation ./Deutsch.txt
  sfs install world ./MoonBase
  sfs install blueprint ./Rocket.zip --extract
  sfs install texture ./pack --name "Shiny Textures"`,
	Args: cobra.ExactArgs(2),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installName, "name", "n", "", "Asset name (default: source file name)")
	installCmd.Flags().BoolVarP(&installExtract, "extract", "x", false, "Unpack a .zip archive into a folder asset")
}

func runInstall(cmd *cobra.Command, args []string) error {
	category, err := domain.ParseCategory(args[0])
	if err != nil {
		return err
	}

	req := services.InstallRequest{
		Category:   category,
		SourcePath: args[1],
		Name:       installName,
		Extract:    installExtract,
	}

	fmt.Println(ui.FormatRocket(appPrinter.Text("install.title") + ": " + appPrinter.Category(category)))

	resp, err := installService.Execute(getContext(), req)
	if err != nil {
		return reportError("Install failed", err)
	}

	if resp.Asset == nil {
		// Written, but the game will not list it (e.g. a file in a folder category)
		fmt.Println(ui.FormatWarning("Copied to " + resp.Path + ", but it does not look like a valid " + appPrinter.Category(category)))
		return nil
	}

	fmt.Println(ui.FormatSuccess(appPrinter.Text("install.done", resp.Asset.Name)))
	fmt.Println(ui.RenderKeyValue("Path", resp.Path))
	fmt.Println(ui.RenderKeyValue("Size", ui.FormatSizeKB(resp.Asset.SizeKB)))
	return nil
}
