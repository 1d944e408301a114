package domain

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// URI list payload keys, probed in order.
const (
	URIListMIMEType     = "text/uri-list"
	CodeURIListMIMEType = "application/vnd.code.uri-list"
)

// FilesMIMEType is the key hosts use for dropped file lists.
const FilesMIMEType = "files"

// ParseURIList splits a text/uri-list body into its entries.
// Lines are trimmed; blank lines and comment lines starting with '#' are dropped.
func ParseURIList(body string) []string {
	var entries []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// FilePathFromURI resolves a file-scheme URI to a cleaned local path.
// It returns false for URIs that do not parse, use another scheme or name a
// remote host.
func FilePathFromURI(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", false
	}

	p := u.Path
	if p == "" && u.Opaque != "" {
		// file:a.png names /a.png, never a path relative to the working directory.
		opaque, err := url.PathUnescape(u.Opaque)
		if err != nil {
			return "", false
		}
		p = "/" + strings.TrimPrefix(opaque, "/")
	}
	if p == "" {
		return "", false
	}

	// file:///C:/dir/a.png
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}

	return filepath.Clean(filepath.FromSlash(p)), true
}

// FileURI returns the file-scheme URI for an absolute local path.
func FileURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
