package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	fixed := time.UnixMilli(1700000000000)

	closeFn, err := Setup(Options{Dir: dir, Level: "info", RetentionDays: 7, now: func() time.Time { return fixed }})
	require.NoError(t, err)

	path := LatestPath()
	require.Equal(t, filepath.Join(dir, "sfs_1700000000000.log"), path)

	log.Info().Str("category", "world").Msg("installed asset")
	log.Debug().Msg("hidden at info level")
	require.NoError(t, closeFn())
	require.Empty(t, LatestPath())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"category":"world"`)
	require.Contains(t, string(data), `"message":"installed asset"`)
	require.NotContains(t, string(data), "hidden at info level")
}

func TestSetup_VerboseConsole(t *testing.T) {
	var console bytes.Buffer

	closeFn, err := Setup(Options{Level: "warn", Verbose: true, Console: &console})
	require.NoError(t, err)
	defer closeFn()

	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	log.Debug().Msg("scanned assets")
	require.Contains(t, console.String(), "scanned assets")
}

func TestSetup_InvalidLevelDefaultsToInfo(t *testing.T) {
	closeFn, err := Setup(Options{Level: "loud"})
	require.NoError(t, err)
	defer closeFn()

	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch := func(name string, age time.Duration) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		mod := now.Add(-age)
		require.NoError(t, os.Chtimes(path, mod, mod))
		return path
	}

	old := touch("sfs_1.log", 8*24*time.Hour)
	recent := touch("sfs_2.log", 2*24*time.Hour)
	foreign := touch("other.log", 30*24*time.Hour)

	removed, err := Cleanup(dir, 7, now)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	require.NoFileExists(t, old)
	require.FileExists(t, recent)
	require.FileExists(t, foreign)
}

func TestCleanup_MissingDir(t *testing.T) {
	removed, err := Cleanup(filepath.Join(t.TempDir(), "none"), 7, time.Now())
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestCleanup_DisabledRetention(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sfs_1.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	old := time.Now().Add(-365 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	removed, err := Cleanup(dir, 0, time.Now())
	require.NoError(t, err)
	require.Zero(t, removed)
	require.True(t, strings.HasSuffix(path, ".log"))
	require.FileExists(t, path)
}
