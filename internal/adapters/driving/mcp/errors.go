// Package mcp provides an MCP (Model Context Protocol) server adapter for mdpaste.
// It lets AI assistants paste images into Markdown documents the same way
// an editor paste would.
package mcp

import "errors"

// ErrMissingPasteService is returned when the paste service is not provided.
var ErrMissingPasteService = errors.New("mcp: paste service is required")
