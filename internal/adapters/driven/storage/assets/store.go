// Package assets implements driven.AssetWriter on the local filesystem.
// Every image is stored once, named by the SHA-256 of its bytes.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AssetWriter = (*Store)(nil)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store writes content-addressed assets. It holds no state: whether an asset
// exists is checked on disk immediately before each write.
type Store struct{}

// NewStore creates an asset store.
func NewStore() *Store {
	return &Store{}
}

// EnsureDir creates dir with its parents. A directory created concurrently by
// another process counts as success.
func (s *Store) EnsureDir(_ context.Context, dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrAssetWrite, dir, err)
	}
	return nil
}

// Write stores src in dir under <sha256>.<ext>. An asset that already exists
// is left untouched.
func (s *Store) Write(ctx context.Context, src domain.ImageSource, dir string) (domain.WrittenAsset, error) {
	ext := domain.NormalizeExt(src.Extension())

	data, err := readSource(ctx, src)
	if err != nil {
		return domain.WrittenAsset{}, err
	}

	identity := domain.IdentityOf(data)
	target := filepath.Join(dir, identity.FileName(ext))
	asset := domain.WrittenAsset{Path: target, Identity: identity}

	exists, err := fileExists(target)
	if err != nil {
		return domain.WrittenAsset{}, fmt.Errorf("%w: checking %s: %w", domain.ErrAssetWrite, target, err)
	}
	if exists {
		return asset, nil
	}

	if err := writeFileAtomic(dir, target, data); err != nil {
		return domain.WrittenAsset{}, fmt.Errorf("%w: %w", domain.ErrAssetWrite, err)
	}

	asset.Created = true
	return asset, nil
}

// readSource reads all bytes of src.
func readSource(ctx context.Context, src domain.ImageSource) ([]byte, error) {
	switch s := src.(type) {
	case domain.FilePathSource:
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSourceRead, err)
		}
		return data, nil
	case domain.InlineDataSource:
		if s.File == nil {
			return nil, fmt.Errorf("%w: inline source has no file", domain.ErrSourceRead)
		}
		data, err := s.File.ReadBytes(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceRead, s.File.Name(), err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: unknown image source %T", domain.ErrInvalidInput, src)
	}
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// writeFileAtomic writes data to a temp file in dir and renames it to target,
// so a half-written asset is never visible under its content name.
func writeFileAtomic(dir, target string, data []byte) error {
	tmpFile, err := os.CreateTemp(dir, ".paste-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("renaming to %s: %w", target, err)
	}

	success = true
	return nil
}
