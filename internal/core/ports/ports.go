package ports

import (
	"context"

	"github.com/kamal-hamza/sfs-cli/internal/core/domain"
)

// AssetRepository defines the port for the on-disk asset tree.
// Every call is a blocking filesystem operation; implementations hold no
// state between calls, so callers re-run List after any mutation.
type AssetRepository interface {
	// List scans every canonical directory and returns the assets found,
	// in category scan order
	List(ctx context.Context) ([]domain.Asset, error)

	// Install copies src into the canonical location for category c under
	// name, overwriting any existing asset, and returns the final path.
	// Failures are *domain.InstallError.
	Install(ctx context.Context, c domain.Category, src domain.Source, name string) (string, error)

	// Delete removes an asset. Deleting an asset that is already gone
	// succeeds.
	Delete(ctx context.Context, a domain.Asset) error

	// Path returns where an asset lives on disk
	Path(a domain.Asset) (string, error)
}
