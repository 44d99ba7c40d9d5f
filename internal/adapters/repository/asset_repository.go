package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/pkg/fsutil"
	"github.com/kamal-hamza/sfs-cli/pkg/layout"
)

// FileAssetRepository reads and writes assets directly in the game's
// canonical directory tree. It keeps no cache; every List is a fresh scan.
type FileAssetRepository struct {
	layout *layout.Layout
}

func NewFileAssetRepository(l *layout.Layout) *FileAssetRepository {
	return &FileAssetRepository{layout: l}
}

// List scans every canonical directory in category order.
// A missing directory contributes nothing.
func (r *FileAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	assets := make([]domain.Asset, 0)
	for _, d := range r.layout.Directories() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := r.scanDir(d)
		if err != nil {
			log.Error().Err(err).Str("category", d.Category.Key()).Str("path", d.Path).Msg("scan failed")
			return nil, err
		}
		assets = append(assets, found...)
	}

	log.Debug().Int("count", len(assets)).Str("root", r.layout.RootPath).Msg("scanned assets")
	return assets, nil
}

func (r *FileAssetRepository) scanDir(d layout.Directory) ([]domain.Asset, error) {
	rule, err := domain.RuleFor(d.Category)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(d.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrIO, d.Path, err)
	}

	var assets []domain.Asset
	for _, entry := range entries {
		path := filepath.Join(d.Path, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				// dangling link
				continue
			}
			isDir = info.IsDir()
		}

		if !rule.Accepts(entry.Name(), isDir) {
			continue
		}

		sizeKB, err := fsutil.SizeKB(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
		}

		assets = append(assets, domain.Asset{
			Name:     rule.DisplayName(entry.Name()),
			Category: d.Category,
			SizeKB:   sizeKB,
		})
	}
	return assets, nil
}

// Install copies src to the canonical destination of category c.
// Content is staged next to the destination and moved into place only
// once it is complete, replacing any existing asset of the same name.
// A single-file source never replaces an existing directory.
func (r *FileAssetRepository) Install(ctx context.Context, c domain.Category, src domain.Source, name string) (string, error) {
	fail := func(kind, err error) (string, error) {
		installErr := &domain.InstallError{Category: c, Name: name, Kind: kind, Err: err}
		log.Error().Err(installErr).Str("name", name).Msg("install failed")
		return "", installErr
	}

	rule, err := domain.RuleFor(c)
	if err != nil {
		return fail(domain.ErrUnsupportedTarget, nil)
	}
	if !validName(name) {
		return fail(domain.ErrInvalidName, nil)
	}

	// The name is checked again once the category's naming rule applied
	dest, err := r.layout.DestinationFor(c, name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidName) {
			return fail(domain.ErrInvalidName, nil)
		}
		return fail(domain.ErrUnsupportedTarget, nil)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fail(domain.ErrIO, err)
	}

	switch s := src.(type) {
	case domain.StreamSource:
		if s.Open == nil {
			return fail(domain.ErrSourceUnreadable, errors.New("no stream"))
		}
		// A stream only ever overwrites a file, never an installed directory
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			return fail(domain.ErrSourceShape, fmt.Errorf("%s is a directory (use --extract for archives)", dest))
		}
		if rule.Dir {
			log.Warn().Str("category", c.Key()).Str("path", dest).
				Msg("installing a single file where a directory is expected; it will not be listed")
		}
		err = writeStream(dest, s.Open)

	case domain.TreeSource:
		if !rule.Dir {
			return fail(domain.ErrSourceShape, fmt.Errorf("%s expects a single file", c))
		}
		if s.FS == nil {
			return fail(domain.ErrSourceUnreadable, errors.New("no directory"))
		}
		err = stageDir(dest, func(staging string) error {
			return fsutil.CopyTree(ctx, s.FS, staging)
		})

	case domain.ArchiveSource:
		if !rule.Dir {
			return fail(domain.ErrSourceShape, fmt.Errorf("%s expects a single file", c))
		}
		err = stageDir(dest, func(staging string) error {
			return fsutil.ExtractZip(ctx, s.Path, staging)
		})

	default:
		return fail(domain.ErrSourceShape, fmt.Errorf("unknown source %T", src))
	}

	if err != nil {
		if errors.Is(err, fsutil.ErrSourceRead) {
			return fail(domain.ErrSourceUnreadable, err)
		}
		return fail(domain.ErrIO, err)
	}

	log.Info().Str("category", c.Key()).Str("name", name).Str("path", dest).Msg("installed asset")
	return dest, nil
}

func writeStream(dest string, open func() (io.ReadCloser, error)) error {
	rc, err := open()
	if err != nil {
		return fmt.Errorf("%w: %w", fsutil.ErrSourceRead, err)
	}
	defer rc.Close()

	return fsutil.WriteStaged(dest, rc, 0644)
}

func stageDir(dest string, fill func(staging string) error) error {
	staging, err := fsutil.StageDir(filepath.Dir(dest))
	if err != nil {
		return err
	}
	if err := fill(staging); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}
	if err := fsutil.Replace(staging, dest); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}
	return nil
}

// validName rejects names that cannot be a single path element
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}

// Delete removes the asset's file or directory tree.
// An asset that no longer exists is not an error.
func (r *FileAssetRepository) Delete(ctx context.Context, a domain.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.layout.Resolve(a)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("delete failed")
		return fmt.Errorf("%w: failed to delete %s: %w", domain.ErrIO, path, err)
	}

	log.Info().Str("category", a.Category.Key()).Str("name", a.Name).Str("path", path).
		Float64("size_kb", a.SizeKB).Msg("deleted asset")
	return nil
}

// Path returns where an asset lives on disk
func (r *FileAssetRepository) Path(a domain.Asset) (string, error) {
	return r.layout.Resolve(a)
}
