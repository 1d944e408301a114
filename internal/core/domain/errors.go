package domain

import "errors"

// Domain errors represent paste pipeline failures.
// These are distinct from infrastructure errors, which are wrapped with them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoImageSources indicates the payload carries nothing the pipeline
	// can turn into an image. Hosts fall through to their default paste.
	ErrNoImageSources = errors.New("no image sources in payload")

	// ErrDocumentUnsaved indicates the destination document has no stable
	// location on disk, so no asset directory can be derived.
	ErrDocumentUnsaved = errors.New("document must be saved before pasting images")

	// Asset Errors.

	// ErrSourceRead indicates the bytes of an image source could not be read.
	ErrSourceRead = errors.New("reading image source")

	// ErrAssetWrite indicates an asset or its directory could not be written.
	ErrAssetWrite = errors.New("writing asset")
)
