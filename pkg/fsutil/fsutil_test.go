package fsutil

import (
	"archive/zip"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func TestSize_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thrust.pack")
	writeFile(t, path, 2048)

	n, err := Size(path)
	require.NoError(t, err)
	require.Equal(t, int64(2048), n)

	kb, err := SizeKB(path)
	require.NoError(t, err)
	require.Equal(t, 2.0, kb)
}

func TestSize_DirectorySumsDescendants(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	writeFile(t, filepath.Join(root, "nested", "b.bin"), 200)
	writeFile(t, filepath.Join(root, "nested", "deeper", "c.bin"), 300)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	n, err := Size(root)
	require.NoError(t, err)
	require.Equal(t, int64(600), n)
}

func TestSize_EmptyDirectoryIsZero(t *testing.T) {
	n, err := Size(t.TempDir())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSize_MissingPathIsZero(t *testing.T) {
	n, err := Size(filepath.Join(t.TempDir(), "gone"))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSize_SymlinksNotFollowed(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "big.bin"), 4096)
	writeFile(t, filepath.Join(root, "small.bin"), 10)

	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	// a cycle back to the root must not hang the walk
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	n, err := Size(root)
	require.NoError(t, err)
	require.Equal(t, int64(10), n)
}

func TestSize_SymlinkedRootIsMeasured(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "a.bin"), 512)

	link := filepath.Join(t.TempDir(), "World")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	n, err := Size(link)
	require.NoError(t, err)
	require.Equal(t, int64(512), n)
}

func TestSize_GrowsWithContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	before, err := Size(root)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "b.bin"), 1)
	after, err := Size(root)
	require.NoError(t, err)
	require.Greater(t, after, before)
}

func TestSize_EntriesVanishingMidWalkCountAsZero(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "kept.bin"), 100)
	writeFile(t, filepath.Join(dir, "gone.bin"), 50)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Removed after listing, before its size is read
	require.NoError(t, os.Remove(filepath.Join(dir, "gone.bin")))

	var total int64
	walk := sizeWalker(&total)
	for _, e := range entries {
		require.NoError(t, walk(filepath.Join(dir, e.Name()), e, nil))
	}
	require.Equal(t, int64(100), total)

	// A sub-directory deleted before it could be read
	require.NoError(t, walk(filepath.Join(dir, "sub"), nil, fs.ErrNotExist))
	require.Equal(t, int64(100), total)

	require.ErrorIs(t, walk(filepath.Join(dir, "locked"), nil, fs.ErrPermission), fs.ErrPermission)
}

func TestWriteStaged(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "Foo.txt")

	require.NoError(t, WriteStaged(dest, strings.NewReader("hello"), 0644))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	// overwrite
	require.NoError(t, WriteStaged(dest, strings.NewReader("bye"), 0644))
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "bye", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no staging files should be left behind")
}

func TestWriteStaged_ReplacesDirectory(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "Rocket")
	writeFile(t, filepath.Join(dest, "old.txt"), 5)

	require.NoError(t, WriteStaged(dest, strings.NewReader("blob"), 0644))
	info, err := os.Stat(dest)
	require.NoError(t, err)
	require.False(t, info.IsDir())
}

func TestCopyTree(t *testing.T) {
	src := fstest.MapFS{
		"Planets/Earth.txt":    {Data: []byte("earth")},
		"Planets/Moon.txt":     {Data: []byte("moon")},
		"Import_Settings.txt":  {Data: []byte("settings")},
		"Heightmaps/.keep":     {Data: []byte{}},
		"Heightmaps/Mars/h.sh": {Data: []byte("1234")},
	}
	dest := filepath.Join(t.TempDir(), "Kerbol")

	require.NoError(t, CopyTree(context.Background(), src, dest))

	data, err := os.ReadFile(filepath.Join(dest, "Planets", "Moon.txt"))
	require.NoError(t, err)
	require.Equal(t, "moon", string(data))

	n, err := Size(dest)
	require.NoError(t, err)
	require.Equal(t, int64(len("earth")+len("moon")+len("settings")+4), n)
}

func TestCopyTree_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CopyTree(ctx, fstest.MapFS{"a.txt": {Data: []byte("a")}}, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestReplace_SwapsDirectory(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "Shiny")
	writeFile(t, filepath.Join(dest, "old.png"), 10)

	staged, err := StageDir(parent)
	require.NoError(t, err)
	writeFile(t, filepath.Join(staged, "new.png"), 20)

	require.NoError(t, Replace(staged, dest))

	require.NoFileExists(t, filepath.Join(dest, "old.png"))
	require.FileExists(t, filepath.Join(dest, "new.png"))

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "Rocket.zip")
	writeZip(t, archive, map[string]string{
		"Version.txt":        "1.5",
		"Blueprint.txt":      "{}",
		"Thumbnails/pic.png": "png",
	})
	dest := filepath.Join(t.TempDir(), "Rocket")

	require.NoError(t, ExtractZip(context.Background(), archive, dest))

	data, err := os.ReadFile(filepath.Join(dest, "Thumbnails", "pic.png"))
	require.NoError(t, err)
	require.Equal(t, "png", string(data))
	require.FileExists(t, filepath.Join(dest, "Version.txt"))
}

func TestExtractZip_RejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.zip")
	writeZip(t, archive, map[string]string{
		"ok.txt":        "fine",
		"../escape.txt": "nope",
	})
	parent := t.TempDir()
	dest := filepath.Join(parent, "evil")

	err := ExtractZip(context.Background(), archive, dest)
	require.ErrorIs(t, err, ErrUnsafeArchivePath)
	require.NoFileExists(t, filepath.Join(parent, "escape.txt"))
	require.NoDirExists(t, dest)
}

func TestExtractZip_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	writeFile(t, path, 32)

	err := ExtractZip(context.Background(), path, t.TempDir())
	require.ErrorIs(t, err, zip.ErrFormat)
}

func TestCleanStaging(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Rocket", "Blueprint.txt"), 10)
	writeFile(t, filepath.Join(dir, ".sfs-stage-123", "Blueprint.txt"), 10)
	writeFile(t, filepath.Join(dir, ".sfs-stage-456.old", "Version.txt"), 10)
	writeFile(t, filepath.Join(dir, ".sfs-stage-789"), 10)

	found, err := FindStaging(dir)
	require.NoError(t, err)
	require.Len(t, found, 3)

	removed, err := CleanStaging(dir)
	require.NoError(t, err)
	require.ElementsMatch(t, found, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Rocket", entries[0].Name())
}

func TestCleanStaging_MissingDir(t *testing.T) {
	removed, err := CleanStaging(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestIsStaging(t *testing.T) {
	require.True(t, IsStaging(".sfs-stage-1"))
	require.False(t, IsStaging("sfs-stage-1"))
	require.False(t, IsStaging("Rocket"))
}
