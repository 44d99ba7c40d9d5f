package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/services"
	"github.com/kamal-hamza/sfs-cli/pkg/fsutil"
	"github.com/kamal-hamza/sfs-cli/pkg/ui"
)

var (
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the asset folders and report changes",
	Long: `Watch every asset folder that exists and print assets as they are
added or removed, e.g. while the game or a file manager is copying them.

Changes are debounced (watch_debounce_ms) and then the folders are
re-scanned.

Use --quiet to only log changes.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress change notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, d := range appLayout.Directories() {
		if err := watcher.Add(d.Path); err != nil {
			log.Debug().Err(err).Str("path", d.Path).Msg("not watching missing directory")
			continue
		}
		watched++
		if !watchQuiet {
			fmt.Println(ui.FormatMuted("Watching: " + d.Path))
		}
	}
	if watched == 0 {
		return fmt.Errorf("no asset folders found under %s (run 'sfs init --create-dirs')", appLayout.RootPath)
	}

	current, err := listService.Execute(ctx, services.ListRequest{})
	if err != nil {
		return err
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket(fmt.Sprintf("Watching %d assets...", current.Total)))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	return watchLoop(ctx, watcher, debounce, current.Assets, func(added, removed []domain.Asset) {
		for _, a := range added {
			log.Info().Str("name", a.Name).Str("category", a.Category.Key()).Float64("size_kb", a.SizeKB).Msg("asset appeared")
			if !watchQuiet {
				fmt.Println(ui.FormatSuccess(fmt.Sprintf("+ %s (%s, %s)", a.Name, appPrinter.Category(a.Category), ui.FormatSizeKB(a.SizeKB))))
			}
		}
		for _, a := range removed {
			log.Info().Str("name", a.Name).Str("category", a.Category.Key()).Msg("asset disappeared")
			if !watchQuiet {
				fmt.Println(ui.FormatWarning(fmt.Sprintf("- %s (%s)", a.Name, appPrinter.Category(a.Category))))
			}
		}
	})
}

// watchLoop re-scans once events settle for the debounce period and
// reports the difference to the previous scan
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, before []domain.Asset, report func(added, removed []domain.Asset)) error {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}

			// Reset debounce timer
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			resp, err := listService.Execute(ctx, services.ListRequest{})
			if err != nil {
				log.Error().Err(err).Msg("rescan failed")
				continue
			}
			added, removed := diffAssets(before, resp.Assets)
			if len(added) > 0 || len(removed) > 0 {
				report(added, removed)
			}
			before = resp.Assets

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watch stopped"))
			}
			return nil
		}
	}
}

// relevantEvent drops chmod noise and our own staging entries
func relevantEvent(event fsnotify.Event) bool {
	if fsutil.IsStaging(filepath.Base(event.Name)) {
		return false
	}
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

// diffAssets compares two scans by asset key
func diffAssets(before, after []domain.Asset) (added, removed []domain.Asset) {
	seen := make(map[domain.AssetKey]bool, len(before))
	for _, a := range before {
		seen[a.Key()] = true
	}
	now := make(map[domain.AssetKey]bool, len(after))
	for _, a := range after {
		now[a.Key()] = true
		if !seen[a.Key()] {
			added = append(added, a)
		}
	}
	for _, a := range before {
		if !now[a.Key()] {
			removed = append(removed, a)
		}
	}
	return added, removed
}
