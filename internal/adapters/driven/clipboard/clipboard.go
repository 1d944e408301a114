// Package clipboard reads the system clipboard and presents it as a paste
// payload. Only the text representation is available, so the clipboard is
// useful when it holds file URIs or paths copied from a file manager.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/payload"
	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: not supported on this system")

// System reads the OS clipboard through atotto/clipboard.
type System struct {
	readAll func() (string, error)
}

// NewSystem creates a system clipboard reader.
func NewSystem() *System {
	return &System{readAll: clipboard.ReadAll}
}

// ReadText returns the clipboard text.
func (s *System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if Unsupported() {
		return "", ErrUnsupported
	}
	text, err := s.readAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// Unsupported reports whether the platform lacks a clipboard utility
// (xclip, xsel or wl-clipboard on Linux).
func Unsupported() bool {
	return clipboard.Unsupported
}

// Payload reads cb and returns a payload with its text as a URI list.
// Lines holding bare absolute paths are turned into file URIs, which is what
// most file managers put on the text clipboard.
func Payload(ctx context.Context, cb driven.Clipboard) (*payload.Payload, error) {
	text, err := cb.ReadText(ctx)
	if err != nil {
		return nil, err
	}
	return payload.New().Set(domain.URIListMIMEType, payload.StringItem(ToURIList(text))), nil
}

// ToURIList rewrites absolute paths in text as file URIs, leaving other
// lines untouched.
func ToURIList(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && filepath.IsAbs(trimmed) {
			lines[i] = domain.FileURI(trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
