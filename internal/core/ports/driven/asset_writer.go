package driven

import (
	"context"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
)

// AssetWriter persists image sources as content-addressed files.
type AssetWriter interface {
	// EnsureDir creates dir and its parents. An existing directory is not an error.
	EnsureDir(ctx context.Context, dir string) error

	// Write reads src, names it by its content identity and makes sure exactly
	// one file with that name exists in dir. Writing the same bytes twice is a no-op.
	Write(ctx context.Context, src domain.ImageSource, dir string) (domain.WrittenAsset, error)
}
