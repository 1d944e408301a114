package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
	"github.com/custodia-labs/mdpaste/internal/logger"
)

// uriListKeys are the payload keys a URI list may arrive under. The first
// non-empty one wins.
var uriListKeys = []string{domain.URIListMIMEType, domain.CodeURIListMIMEType}

// ExtractImageSources resolves a payload into the ordered list of image
// sources it carries. An empty result means the payload holds no images.
//
// A direct image entry (image/png, image/jpeg, ...) with a file attached wins
// outright. Otherwise file URIs from the URI list come first, followed by the
// file entries of the payload in the order the host supplied them. File-backed
// sources are deduplicated by path.
func ExtractImageSources(ctx context.Context, payload driven.Payload) ([]domain.ImageSource, error) {
	if payload == nil {
		return nil, nil
	}

	if src, ok := pickDirectImage(payload); ok {
		return []domain.ImageSource{src}, nil
	}

	var sources []domain.ImageSource
	seen := make(map[string]struct{})

	addPath := func(path string) {
		if _, dup := seen[path]; dup {
			logger.Debug("skipping duplicate path %s", path)
			return
		}
		seen[path] = struct{}{}
		sources = append(sources, domain.FilePathSource{Path: path, Ext: domain.ExtFromPath(path)})
	}

	uriList, err := readURIList(ctx, payload)
	if err != nil {
		return nil, err
	}
	for _, entry := range domain.ParseURIList(uriList) {
		path, ok := domain.FilePathFromURI(entry)
		if !ok {
			logger.Debug("ignoring uri-list entry %q", entry)
			continue
		}
		if !domain.IsSupportedImagePath(path) {
			continue
		}
		addPath(path)
	}

	for _, entry := range payload.Entries() {
		if entry.Item == nil {
			continue
		}
		file, ok := entry.Item.File()
		if !ok {
			continue
		}

		// Nameless files are dropped rather than given a default extension.
		ext := domain.ExtFromName(file.Name())
		if ext == "" || !domain.IsSupportedExt(ext) {
			continue
		}

		if origin, ok := file.Origin(); ok {
			if path, isFile := domain.FilePathFromURI(origin); isFile {
				if domain.IsSupportedImagePath(path) {
					addPath(path)
				}
				continue
			}
		}

		sources = append(sources, domain.InlineDataSource{File: file, Ext: ext})
	}

	return sources, nil
}

// pickDirectImage returns the first direct image entry that carries a file.
func pickDirectImage(payload driven.Payload) (domain.ImageSource, bool) {
	for _, mimeType := range domain.DirectImageMIMETypes {
		item, ok := payload.Get(mimeType)
		if !ok || item == nil {
			continue
		}
		file, ok := item.File()
		if !ok {
			continue
		}
		logger.Debug("using direct %s entry", mimeType)
		return domain.InlineDataSource{File: file, Ext: domain.ExtForMIMEType(mimeType)}, true
	}
	return nil, false
}

// readURIList returns the body of the first non-empty URI list entry.
func readURIList(ctx context.Context, payload driven.Payload) (string, error) {
	for _, key := range uriListKeys {
		item, ok := payload.Get(key)
		if !ok || item == nil {
			continue
		}
		body, err := item.String(ctx)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", key, err)
		}
		if body != "" {
			return body, nil
		}
	}
	return "", nil
}
