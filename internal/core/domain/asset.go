package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// AssetDirSuffix is appended to the document base name to form its asset directory.
const AssetDirSuffix = "_assets"

// ContentIdentity is the lowercase hex SHA-256 digest of an image's bytes.
type ContentIdentity string

// IdentityOf computes the content identity of data.
func IdentityOf(data []byte) ContentIdentity {
	sum := sha256.Sum256(data)
	return ContentIdentity(hex.EncodeToString(sum[:]))
}

// String implements fmt.Stringer.
func (c ContentIdentity) String() string { return string(c) }

// FileName returns the asset file name for this identity and extension.
func (c ContentIdentity) FileName(ext string) string {
	return string(c) + "." + NormalizeExt(ext)
}

// WrittenAsset is a content-addressed image inside an asset directory.
type WrittenAsset struct {
	// Path is the absolute path of the asset file.
	Path string

	// Identity is the content digest the file is named after.
	Identity ContentIdentity

	// Created is true when this write materialised the file, false when it
	// already existed.
	Created bool
}

// AssetDirectory returns the asset directory for the document at docPath:
// a sibling directory named after the document without its extension plus
// AssetDirSuffix.
func AssetDirectory(docPath string) string {
	base := filepath.Base(docPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = base
	}
	return filepath.Join(filepath.Dir(docPath), name+AssetDirSuffix)
}

// PasteResult is the outcome of a successful paste.
type PasteResult struct {
	// OperationID identifies the paste in logs.
	OperationID string

	// Markdown is the substitution text, one image reference per line.
	Markdown string

	// AssetDir is the directory the assets live in.
	AssetDir string

	// Assets are the written assets in extraction order.
	Assets []WrittenAsset
}
