package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

// Ensure PasteService implements the interface.
var _ driving.PasteService = (*PasteService)(nil)

// DefaultWorkers is the number of sources written at once. One keeps a paste
// strictly sequential.
const DefaultWorkers = 1

// PasteService runs the extract, write and reference pipeline for each paste.
// It keeps no state between pastes; which assets already exist is decided by
// the filesystem every time.
type PasteService struct {
	writer  driven.AssetWriter
	workers int
}

// NewPasteService creates a paste service writing through writer.
func NewPasteService(writer driven.AssetWriter) *PasteService {
	return &PasteService{
		writer:  writer,
		workers: DefaultWorkers,
	}
}

// SetWorkers sets how many sources of one paste may be written concurrently.
// Values below one reset it to DefaultWorkers.
func (s *PasteService) SetWorkers(n int) {
	if n < 1 {
		n = DefaultWorkers
	}
	s.workers = n
}

// Workers returns the configured concurrency.
func (s *PasteService) Workers() int {
	return s.workers
}

// Extract lists the image sources in payload.
func (s *PasteService) Extract(ctx context.Context, payload driven.Payload) ([]domain.ImageSource, error) {
	return ExtractImageSources(ctx, payload)
}

// Paste persists every image in the request's payload and returns the
// Markdown that replaces the paste. It is all-or-nothing: if any source fails
// no Markdown is returned, although assets written before the failure stay
// on disk and are reused by a retry.
func (s *PasteService) Paste(ctx context.Context, req driving.PasteRequest) (*domain.PasteResult, error) {
	if s.writer == nil {
		return nil, fmt.Errorf("%w: asset writer not configured", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.DocumentPath == "" {
		return nil, domain.ErrDocumentUnsaved
	}

	docPath, err := filepath.Abs(req.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("resolving document path: %w", err)
	}

	sources, err := ExtractImageSources(ctx, req.Payload)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, domain.ErrNoImageSources
	}

	opID := uuid.NewString()
	assetDir := domain.AssetDirectory(docPath)
	docDir := filepath.Dir(docPath)

	logger.Section("Paste " + opID)
	logger.Debug("document: %s", docPath)
	logger.Debug("asset directory: %s", assetDir)
	logger.Debug("%d image source(s)", len(sources))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.writer.EnsureDir(ctx, assetDir); err != nil {
		return nil, err
	}

	assets, err := s.writeAll(ctx, sources, assetDir)
	if err != nil {
		logger.Warn("paste %s failed: %v", opID, err)
		return nil, err
	}

	refs := make([]string, len(assets))
	for i, asset := range assets {
		ref, err := BuildReference(asset.Path, docDir)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}

	logger.Info("paste %s wrote %d reference(s)", opID, len(refs))

	return &domain.PasteResult{
		OperationID: opID,
		Markdown:    JoinReferences(refs),
		AssetDir:    assetDir,
		Assets:      assets,
	}, nil
}

// writeAll writes sources with at most s.workers in flight and returns the
// assets in source order. A source that has started writing always runs to
// completion; sources not yet started are skipped once ctx is cancelled or
// another source has failed.
func (s *PasteService) writeAll(
	ctx context.Context,
	sources []domain.ImageSource,
	assetDir string,
) ([]domain.WrittenAsset, error) {
	assets := make([]domain.WrittenAsset, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			asset, err := s.writer.Write(context.WithoutCancel(gctx), src, assetDir)
			if err != nil {
				return err
			}

			if asset.Created {
				logger.Debug("wrote %s from %s", filepath.Base(asset.Path), domain.Describe(src))
			} else {
				logger.Debug("reused %s for %s", filepath.Base(asset.Path), domain.Describe(src))
			}
			assets[i] = asset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}
