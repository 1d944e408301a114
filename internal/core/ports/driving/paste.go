package driving

import (
	"context"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
)

// PasteRequest describes one paste or drop into a document.
type PasteRequest struct {
	// DocumentPath is the absolute path of the destination document.
	// Empty means the document has not been saved yet.
	DocumentPath string

	// Payload is the data being pasted.
	Payload driven.Payload
}

// PasteService turns pasted images into content-addressed assets and
// Markdown image references.
type PasteService interface {
	// Paste runs the pipeline for one paste event.
	// Returns domain.ErrNoImageSources when the payload holds no images and
	// domain.ErrDocumentUnsaved when the document has no path. Either way
	// nothing is written.
	Paste(ctx context.Context, req PasteRequest) (*domain.PasteResult, error)

	// Extract lists the image sources in a payload without writing anything.
	Extract(ctx context.Context, payload driven.Payload) ([]domain.ImageSource, error)
}
