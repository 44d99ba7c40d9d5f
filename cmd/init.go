package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/pkg/config"
	"github.com/kamal-hamza/sfs-cli/pkg/layout"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	initCreateDirs bool
	initForce      bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Write a default config.yaml pointing at the game storage directory.

The storage directory is taken from --root, or detected on the device:
  $EXTERNAL_STORAGE/` + layout.GameDir + `

Use --create-dirs to also create the asset folders the game reads:
  - Saving/Blueprints
  - Saving/Worlds
  - Mods/Custom_Assets/Parts
  - Mods/Custom_Assets/Texture Packs
  - Custom Solar Systems
  - Custom Translations`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initCreateDirs, "create-dirs", false, "Create the asset folders under the storage directory")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	root := resolveRoot()

	fmt.Println(ui.FormatRocket("Initializing sfs..."))
	fmt.Println()

	// Check if already initialized
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil && !initForce:
		fmt.Println(ui.FormatWarning("Config already exists (use --force to overwrite)"))
		fmt.Println(ui.FormatMuted("Location: " + path))
	default:
		cfg := config.DefaultConfig()
		cfg.RootPath = root
		if err := cfg.Save(path); err != nil {
			fmt.Println(ui.FormatError("Failed to write config"))
			return err
		}
		fmt.Println(ui.FormatSuccess("Config written"))
		fmt.Println(ui.RenderKeyValue("Location", path))
	}

	l := layout.New(root)
	if initCreateDirs {
		if err := l.Initialize(); err != nil {
			fmt.Println(ui.FormatError("Failed to create asset folders"))
			return err
		}
		fmt.Println(ui.FormatSuccess("Asset folders created"))
		for _, d := range l.Directories() {
			fmt.Println(ui.FormatMuted("  " + d.Path))
		}
	} else if !l.Exists() {
		fmt.Println(ui.FormatWarning("Storage directory not found: " + root))
		fmt.Println(ui.FormatMuted("  Run 'sfs init --create-dirs' or pass --root"))
	}

	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Storage", root))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. List installed assets: sfs list"))
	fmt.Println(ui.FormatMuted("  2. Install a blueprint: sfs install blueprint ./Rocket"))
	fmt.Println(ui.FormatMuted("  3. Browse interactively: sfs dash"))

	return nil
}
