package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/adapters/repository"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/config"
	"github.com/kamal-hamza/sfs-cli/pkg/i18n"
	"github.com/kamal-hamza/sfs-cli/pkg/layout"
	"github.com/kamal-hamza/sfs-cli/pkg/logging"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	// Global flags
	flagRoot    string
	flagConfig  string
	flagVerbose bool

	// Settings
	appConfig  *config.Config
	appPrinter *i18n.Printer
	closeLog   func() error

	// Asset tree
	appLayout *layout.Layout
	assetRepo *repository.FileAssetRepository

	// Services
	listService    *services.ListService
	installService *services.InstallService
	deleteService  *services.DeleteService
	statsService   *services.StatsService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sfs",
	Short: "SFS - Spaceflight Simulator asset manager",
	Long: ui.StyleTitle.Render("SFS") + " - Spaceflight Simulator Asset Manager\n\n" +
		"Browse, install and delete blueprints, mods, worlds, custom solar systems\n" +
		"and translations in the game's storage directory.",
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Game storage directory (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/sfs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log to stderr at debug level")
}

// initializeApp loads settings, sets up logging and wires the services
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		return err
	}

	if !needsAssetTree(cmd) {
		return nil
	}

	root := resolveRoot()
	appLayout = layout.New(root)
	if !appLayout.Exists() {
		log.Warn().Str("path", root).Msg("asset root not found, scans will be empty")
	}

	assetRepo = repository.NewFileAssetRepository(appLayout)

	listService = services.NewListService(assetRepo)
	installService = services.NewInstallService(assetRepo)
	deleteService = services.NewDeleteService(assetRepo)
	statsService = services.NewStatsService(assetRepo)

	return nil
}

// loadSettings reads the config file and environment, then configures
// theme, language and logging
func loadSettings() error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	appConfig = cfg

	ui.SetTheme(cfg.ColorTheme)
	appPrinter = i18n.New(cfg.Language)

	opts := logging.Options{
		Level:         cfg.LogLevel,
		Verbose:       flagVerbose,
		RetentionDays: cfg.LogRetentionDays,
	}
	if dataDir, err := layout.DataDir(); err == nil {
		opts.Dir = filepath.Join(dataDir, "logs")
	}
	closeFn, err := logging.Setup(opts)
	if err != nil {
		// Logging is best effort; fall back to console only
		fmt.Fprintln(os.Stderr, ui.FormatWarning("Logging disabled: "+err.Error()))
		opts.Dir = ""
		closeFn, _ = logging.Setup(opts)
	}
	closeLog = closeFn
	return nil
}

// needsAssetTree is false for commands that never touch the asset tree
func needsAssetTree(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c {
		case initCmd, versionCmd, configCmd:
			return false
		}
	}
	return true
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if closeLog != nil {
		return closeLog()
	}
	return nil
}

// resolveRoot picks the asset root: --root, then config, then the device default
func resolveRoot() string {
	if flagRoot != "" {
		return flagRoot
	}
	if appConfig != nil && appConfig.RootPath != "" {
		return appConfig.RootPath
	}
	return layout.DetectRoot()
}

func configFilePath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	path, err := layout.ConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to determine config location: %w", err)
	}
	return path, nil
}

// getContext returns a context for operations, cancelled on Ctrl+C
func getContext() context.Context {
	if ctx := rootCmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
