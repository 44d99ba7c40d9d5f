package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/ports"
)

// InstallService installs assets from local files and directories
type InstallService struct {
	assetRepo ports.AssetRepository
}

func NewInstallService(repo ports.AssetRepository) *InstallService {
	return &InstallService{
		assetRepo: repo,
	}
}

// InstallRequest describes one install from the local filesystem
type InstallRequest struct {
	Category   domain.Category
	SourcePath string
	Name       string // Defaults to the source's base name
	Extract    bool   // Treat SourcePath as a zip archive to unpack
}

// InstallResponse reports where the asset landed.
// Asset is nil when the installed entry is not picked up by a scan,
// e.g. a single file placed in a directory-only category.
type InstallResponse struct {
	Path  string
	Asset *domain.Asset
}

// Execute installs the asset and re-scans to report what the game will see
func (s *InstallService) Execute(ctx context.Context, req InstallRequest) (*InstallResponse, error) {
	if req.Category == nil {
		return nil, fmt.Errorf("no asset type given")
	}

	// 1. Reject unsupported targets before touching the source
	rule, err := domain.RuleFor(req.Category)
	if err != nil {
		return nil, &domain.InstallError{
			Category: req.Category,
			Name:     req.Name,
			Kind:     domain.ErrUnsupportedTarget,
		}
	}

	// 2. Build the source
	src, err := sourceFor(req.SourcePath, req.Extract)
	if err != nil {
		return nil, &domain.InstallError{
			Category: req.Category,
			Name:     req.Name,
			Kind:     domain.ErrSourceUnreadable,
			Err:      err,
		}
	}

	name := req.Name
	if name == "" {
		name = filepath.Base(filepath.Clean(req.SourcePath))
		if req.Extract {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
	}

	// 3. Install
	path, err := s.assetRepo.Install(ctx, req.Category, src, name)
	if err != nil {
		return nil, err
	}

	// 4. Re-scan
	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("installed to %s but failed to rescan: %w", path, err)
	}

	resp := &InstallResponse{Path: path}
	want := domain.Asset{Name: rule.DisplayName(filepath.Base(path)), Category: req.Category}.Key()
	for i := range assets {
		if assets[i].Key() == want {
			resp.Asset = &assets[i]
			break
		}
	}
	return resp, nil
}

// sourceFor maps a local path onto the matching install source.
// Archives are only unpacked when asked to; a .zip is otherwise copied
// as an opaque file.
func sourceFor(path string, extract bool) (domain.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	switch {
	case extract && info.IsDir():
		return nil, fmt.Errorf("%s is a directory, not an archive", path)
	case extract:
		return domain.ArchiveSource{Path: path}, nil
	case info.IsDir():
		return domain.TreeSource{FS: os.DirFS(path)}, nil
	}

	return domain.StreamSource{Open: func() (io.ReadCloser, error) {
		return os.Open(path)
	}}, nil
}
