package driven

import "context"

// Clipboard reads the system clipboard.
type Clipboard interface {
	// ReadText returns the clipboard's text content.
	ReadText(ctx context.Context) (string, error)
}
