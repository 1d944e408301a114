package filesystem

import (
	"path/filepath"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
)

// ResolvePath converts a command-line argument naming an image into an
// absolute local path. Accepts file:// URIs and bare paths.
func ResolvePath(arg string) (string, error) {
	if path, ok := domain.FilePathFromURI(arg); ok {
		return path, nil
	}
	return filepath.Abs(arg)
}
