package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/pkg/config"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the sfs configuration",
	Long: `Show or change settings in config.yaml.

Environment variables (SFS_ROOT, SFS_LANGUAGE, SFS_COLOR_THEME,
SFS_LOG_LEVEL) override the file and are reflected in 'config show'.

Examples:
  sfs config
  sfs config set language zh
  sfs config set confirm_delete false
  sfs config get root_path
  sfs config edit`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print one setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(appConfig, args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one setting and save it",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE:      runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}

		// Ensure it exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config file not found at %s (run 'sfs init')", path)
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		c := exec.Command(GetPreferredEditor(), path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println(ui.FormatMuted(path))
	fmt.Println()

	for _, key := range config.Keys() {
		value, err := config.Get(appConfig, key)
		if err != nil {
			return err
		}
		if value == "" {
			value = ui.StyleMuted.Render("(default)")
		}
		fmt.Println(ui.RenderKeyValue(key, value))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	// Start from the file, not the env-overlaid settings
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	key, value := args[0], strings.TrimSpace(args[1])
	if err := config.Set(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return reportError("Failed to save config", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s = %s", key, value)))
	return nil
}
