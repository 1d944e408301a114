package services

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
)

// BuildReference returns the Markdown image reference for the asset at
// writtenPath, relative to docDir. The path always uses forward slashes and
// starts with "./" or "../".
func BuildReference(writtenPath, docDir string) (string, error) {
	rel, err := filepath.Rel(docDir, writtenPath)
	if err != nil {
		return "", fmt.Errorf("relativising %s: %w", writtenPath, err)
	}

	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "./") && !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}

	return "![](" + rel + ")", nil
}

// JoinReferences joins image references into the substitution text of one paste.
func JoinReferences(refs []string) string {
	return strings.Join(refs, "\n")
}

// ResolveReference maps an image destination found in a document in docDir
// back to a local path. Returns false for destinations that are not local
// files, such as http URLs.
func ResolveReference(dest, docDir string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", false
	}
	if path, ok := domain.FilePathFromURI(dest); ok {
		return path, true
	}
	if u, err := url.Parse(dest); err == nil && len(u.Scheme) > 1 {
		return "", false
	}

	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	path := filepath.FromSlash(dest)
	if filepath.IsAbs(path) {
		return filepath.Clean(path), true
	}
	return filepath.Join(docDir, path), true
}
