package domain

import (
	"context"
	"path/filepath"
	"strings"
)

// DefaultExt is used when an image carries no usable extension.
const DefaultExt = "png"

// DirectImageMIMETypes lists the payload keys that advertise a single image
// directly, in the order they are probed.
var DirectImageMIMETypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
}

// mimeToExt maps a direct image MIME type to its canonical extension.
var mimeToExt = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// supportedExts is the set of extensions accepted from file lists and URI lists.
var supportedExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
}

// ExtForMIMEType returns the canonical extension for a direct image MIME type.
// Unknown types fall back to DefaultExt.
func ExtForMIMEType(mimeType string) string {
	if ext, ok := mimeToExt[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return DefaultExt
}

// IsDirectImageMIMEType reports whether mimeType is one of
// DirectImageMIMETypes.
func IsDirectImageMIMEType(mimeType string) bool {
	for _, t := range DirectImageMIMETypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// IsSupportedExt reports whether ext (with or without a leading dot) is an
// image extension the pipeline accepts. Matching is case-insensitive.
func IsSupportedExt(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, ok := supportedExts[ext]
	return ok
}

// IsSupportedImagePath reports whether the file at path has a supported
// image extension.
func IsSupportedImagePath(path string) bool {
	ext := filepath.Ext(path)
	return ext != "" && IsSupportedExt(ext)
}

// ExtFromName returns the lowercase extension of a declared file name without
// the dot, or "" if the name has none.
func ExtFromName(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ExtFromPath returns the lowercase extension of path without the dot,
// defaulting to DefaultExt.
func ExtFromPath(path string) string {
	if ext := ExtFromName(path); ext != "" {
		return ext
	}
	return DefaultExt
}

// NormalizeExt trims whitespace and a leading dot and lowercases ext.
// An empty result becomes DefaultExt.
func NormalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return DefaultExt
	}
	return ext
}

// FileHandle is an in-memory file carried by a paste payload.
type FileHandle interface {
	// Name is the declared file name. May be empty.
	Name() string

	// Origin returns the URI the file was taken from, if the host knows it.
	Origin() (string, bool)

	// ReadBytes reads the whole file.
	ReadBytes(ctx context.Context) ([]byte, error)
}

// ImageSource is an image found in a paste payload.
// It is implemented only by FilePathSource and InlineDataSource.
type ImageSource interface {
	// Extension returns the extension the asset should be written with.
	Extension() string

	imageSource()
}

// FilePathSource is an image that already exists on disk.
type FilePathSource struct {
	// Path is the resolved absolute filesystem path.
	Path string

	// Ext is the extension taken from Path.
	Ext string
}

// Extension implements ImageSource.
func (s FilePathSource) Extension() string { return s.Ext }

func (FilePathSource) imageSource() {}

// InlineDataSource is an image whose bytes are embedded in the payload.
type InlineDataSource struct {
	File FileHandle
	Ext  string
}

// Extension implements ImageSource.
func (s InlineDataSource) Extension() string { return s.Ext }

func (InlineDataSource) imageSource() {}

// Describe returns a short human-readable label for a source, for logs.
func Describe(src ImageSource) string {
	switch s := src.(type) {
	case FilePathSource:
		return "file " + s.Path
	case InlineDataSource:
		if s.File != nil && s.File.Name() != "" {
			return "inline " + s.File.Name()
		}
		return "inline data"
	default:
		return "unknown source"
	}
}
