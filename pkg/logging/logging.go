// Package logging configures the global zerolog logger.
// Every run appends JSON lines to its own file in the log directory;
// verbose runs also get a human readable console writer on stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	filePrefix = "sfs_"
	fileSuffix = ".log"
)

type Options struct {
	Dir           string // log directory; empty disables the file
	Level         string // zerolog level name
	Verbose       bool
	RetentionDays int
	Console       io.Writer // defaults to os.Stderr

	now func() time.Time
}

var (
	mu      sync.Mutex
	current *os.File
)

// Setup replaces the global logger. It returns a close function for the
// log file. Old log files are removed first.
func Setup(opts Options) (func() error, error) {
	mu.Lock()
	defer mu.Unlock()

	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if opts.Verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.RFC3339})
	}

	closeFn := func() error { return nil }
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if _, err := Cleanup(opts.Dir, opts.RetentionDays, opts.now()); err != nil {
			return nil, err
		}

		name := fmt.Sprintf("%s%d%s", filePrefix, opts.now().UnixMilli(), fileSuffix)
		f, err := os.OpenFile(filepath.Join(opts.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		current = f
		writers = append(writers, f)
		closeFn = func() error {
			mu.Lock()
			defer mu.Unlock()
			if current == f {
				current = nil
			}
			return f.Close()
		}
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return closeFn, nil
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return closeFn, nil
}

// LatestPath returns the file the current run logs to, or "" if none
func LatestPath() string {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		return ""
	}
	return current.Name()
}

// Cleanup removes log files older than retentionDays and reports how many
// were deleted. Files that do not look like sfs logs are left alone.
func Cleanup(dir string, retentionDays int, now time.Time) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := now.Add(-time.Duration(retentionDays) * 24 * time.Hour)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, name)); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
