package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for mdpaste resources.
	uriScheme = "mdpaste://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current mdpaste configuration",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "asset-dir/{document}",
		Name:        "asset-dir",
		Description: "Asset directory images pasted into a document are written to (document is a URL-escaped path)",
		MIMEType:    "text/plain",
	}, s.handleAssetDirResource)
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultAppSettings()
	path := ""
	if s.ports.Settings != nil {
		current, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		settings = *current
		path = s.ports.Settings.Path()
	}

	type settingsInfo struct {
		Path          string `json:"path,omitempty"`
		Verbose       bool   `json:"verbose"`
		PasteWorkers  int    `json:"paste_workers"`
		WatchSettleMs int    `json:"watch_settle_ms"`
	}

	data, err := json.MarshalIndent(settingsInfo{
		Path:          path,
		Verbose:       settings.Verbose,
		PasteWorkers:  settings.Paste.Workers,
		WatchSettleMs: settings.Watch.SettleMs,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleAssetDirResource returns the asset directory for a document.
func (s *Server) handleAssetDirResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docPath := extractDocumentPath(req.Params.URI)
	if docPath == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     domain.AssetDirectory(docPath),
		}},
	}, nil
}

// extractDocumentPath extracts the document path from a URI like
// mdpaste://asset-dir/%2Fproj%2Fnotes.md.
func extractDocumentPath(uri string) string {
	const prefix = uriScheme + "asset-dir/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	path, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return path
}
