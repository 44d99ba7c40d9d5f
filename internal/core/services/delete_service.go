package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
	"github.com/kamal-hamza/sfs-cli/internal/core/ports"
)

// DeleteService handles asset deletion
type DeleteService struct {
	assetRepo ports.AssetRepository
}

// NewDeleteService creates a new delete service
func NewDeleteService(assetRepo ports.AssetRepository) *DeleteService {
	return &DeleteService{
		assetRepo: assetRepo,
	}
}

// DeleteRequest represents a request to delete an asset
type DeleteRequest struct {
	Asset domain.Asset
}

// DeleteResponse reports the state after the follow-up scan
type DeleteResponse struct {
	Path      string
	Gone      bool
	Remaining []domain.Asset
}

// Execute deletes the asset, then re-scans to confirm it is gone
func (s *DeleteService) Execute(ctx context.Context, req DeleteRequest) (*DeleteResponse, error) {
	path, err := s.assetRepo.Path(req.Asset)
	if err != nil {
		return nil, fmt.Errorf("cannot delete %s: %w", req.Asset.Name, err)
	}

	if err := s.assetRepo.Delete(ctx, req.Asset); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", req.Asset.Name, err)
	}

	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("deleted %s but failed to rescan: %w", req.Asset.Name, err)
	}

	gone := true
	for _, a := range assets {
		if a.Key() == req.Asset.Key() {
			gone = false
			break
		}
	}

	return &DeleteResponse{
		Path:      path,
		Gone:      gone,
		Remaining: assets,
	}, nil
}
