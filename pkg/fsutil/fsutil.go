// Package fsutil holds the filesystem primitives behind scanning and
// installing assets: size accounting, staged writes and tree copies.
package fsutil

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	stagePrefix  = ".sfs-stage-"
	stagePattern = stagePrefix + "*"
)

var (
	// ErrSourceRead marks failures on the reading side of a copy
	ErrSourceRead = errors.New("source read failed")

	// ErrUnsafeArchivePath is returned when a zip entry would land outside
	// the extraction directory
	ErrUnsafeArchivePath = errors.New("archive entry escapes destination")
)

// sourceReader tags read errors so callers can tell them from write errors
type sourceReader struct {
	r io.Reader
}

func (s sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	return n, err
}

// Size returns the byte size of a file, or the sum of all non-directory
// descendants of a directory. Symlinks below the root are never followed.
// A root that does not exist has size zero, as does any entry that
// disappears while walking.
func Size(path string) (int64, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64
	err = filepath.WalkDir(resolved, sizeWalker(&total))
	if err != nil {
		return 0, fmt.Errorf("failed to measure %s: %w", path, err)
	}
	return total, nil
}

// sizeWalker adds the size of every regular file it visits to total.
// Entries removed between listing and stat count as zero.
func sizeWalker(total *int64) fs.WalkDirFunc {
	return func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		*total += info.Size()
		return nil
	}
}

// SizeKB is Size in kibibytes
func SizeKB(path string) (float64, error) {
	n, err := Size(path)
	if err != nil {
		return 0, err
	}
	return float64(n) / 1024, nil
}

// WriteStaged copies r into a temp file next to dest, syncs it and renames
// it over dest. Readers never observe a partially written dest.
func WriteStaged(dest string, r io.Reader, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(dest), stagePattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, sourceReader{r}); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := Replace(tmpPath, dest); err != nil {
		return err
	}
	needsCleanup = false

	return nil
}

// StageDir creates an empty staging directory in parent
func StageDir(parent string) (string, error) {
	dir, err := os.MkdirTemp(parent, stagePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// Replace moves staged over dest. A plain file is swapped with a single
// rename. An existing directory is first moved aside, then removed once
// the staged content is in place.
func Replace(staged, dest string) error {
	info, err := os.Lstat(dest)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", dest, err)
	}

	if err != nil || !info.IsDir() {
		if err := os.Rename(staged, dest); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", dest, err)
		}
		return nil
	}

	aside := staged + ".old"
	if err := os.Rename(dest, aside); err != nil {
		return fmt.Errorf("failed to move %s aside: %w", dest, err)
	}
	if err := os.Rename(staged, dest); err != nil {
		_ = os.Rename(aside, dest)
		return fmt.Errorf("failed to move %s into place: %w", dest, err)
	}
	if err := os.RemoveAll(aside); err != nil {
		return fmt.Errorf("failed to remove previous %s: %w", dest, err)
	}
	return nil
}

// IsStaging reports whether name is a staging entry created by an install
func IsStaging(name string) bool {
	return strings.HasPrefix(name, stagePrefix)
}

// FindStaging lists staging entries left in dir by interrupted installs.
// A missing dir has none.
func FindStaging(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var found []string
	for _, e := range entries {
		if IsStaging(e.Name()) {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	return found, nil
}

// CleanStaging removes the entries FindStaging reports and returns them
func CleanStaging(dir string) ([]string, error) {
	found, err := FindStaging(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(found))
	for _, p := range found {
		if err := os.RemoveAll(p); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}

// CopyTree copies every directory and regular file of fsys into dest.
// Symlinks and special files are skipped. ctx is checked between entries.
// Failures reading fsys wrap ErrSourceRead.
func CopyTree(ctx context.Context, fsys fs.FS, dest string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSourceRead, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		target := filepath.Join(dest, filepath.FromSlash(p))
		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case !d.Type().IsRegular():
			return nil
		}
		return copyFile(fsys, p, target)
	})
}

func copyFile(fsys fs.FS, name, target string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, sourceReader{src}); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy %s: %w", name, err)
	}
	return dst.Close()
}

// ExtractZip unpacks the archive at path into dest.
// Entries with absolute or parent-relative names are rejected before
// anything is written.
func ExtractZip(ctx context.Context, path, dest string) error {
	r, err := zip.OpenReader(path)
	if errors.Is(err, zip.ErrInsecurePath) {
		r.Close()
		return fmt.Errorf("%w: %w: %s", ErrSourceRead, ErrUnsafeArchivePath, path)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to open archive %s: %w", ErrSourceRead, path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return fmt.Errorf("%w: %w: %s", ErrSourceRead, ErrUnsafeArchivePath, f.Name)
		}
	}

	return CopyTree(ctx, &r.Reader, dest)
}
