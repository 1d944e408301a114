package driven

import (
	"context"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
)

// Payload is the multi-representation data a host hands over on paste or drop.
// Keys are MIME-type-like strings ("image/png", "text/uri-list", "files").
// The pipeline only reads it.
type Payload interface {
	// Get returns the item stored under key.
	Get(key string) (PayloadItem, bool)

	// Entries returns every item with its key, in the order the host added them.
	Entries() []PayloadEntry
}

// PayloadEntry is one keyed item of a Payload.
type PayloadEntry struct {
	Key  string
	Item PayloadItem
}

// PayloadItem is a single representation inside a Payload.
type PayloadItem interface {
	// File returns the in-memory file carried by the item, if any.
	File() (domain.FileHandle, bool)

	// String reads the item as text. Items that are only files return "".
	String(ctx context.Context) (string, error)
}
