package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mdpaste/internal/adapters/driven/payload"
	"github.com/custodia-labs/mdpaste/internal/connectors/filesystem"
	"github.com/custodia-labs/mdpaste/internal/core/domain"
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
)

// PasteImagesInput is the input schema for the paste_images tool.
type PasteImagesInput struct {
	Document string        `json:"document" jsonschema:"absolute path of the saved Markdown document receiving the images"`
	Paths    []string      `json:"paths,omitempty" jsonschema:"image files to paste, as paths or file:// URIs"`
	URIList  string        `json:"uri_list,omitempty" jsonschema:"a text/uri-list body; file:// entries with image extensions are pasted"`
	Inline   []InlineImage `json:"inline,omitempty" jsonschema:"images embedded as base64"`
}

// InlineImage is an image passed by value.
type InlineImage struct {
	Name     string `json:"name,omitempty" jsonschema:"declared file name; its extension decides the asset extension"`
	MIMEType string `json:"mime_type,omitempty" jsonschema:"image MIME type such as image/png; takes priority over every other input"`
	Data     string `json:"data" jsonschema:"base64-encoded image bytes"`
}

// PasteImagesOutput is the output schema for the paste_images tool.
type PasteImagesOutput struct {
	OperationID string        `json:"operation_id,omitempty"`
	Markdown    string        `json:"markdown"`
	AssetDir    string        `json:"asset_dir,omitempty"`
	Assets      []AssetOutput `json:"assets"`
}

// AssetOutput describes one written asset.
type AssetOutput struct {
	Path     string `json:"path"`
	Identity string `json:"identity"`
	Created  bool   `json:"created"`
}

// ExtractImagesOutput is the output schema for the extract_images tool.
type ExtractImagesOutput struct {
	Sources []SourceOutput `json:"sources"`
	Count   int            `json:"count"`
}

// SourceOutput describes one extracted image source.
type SourceOutput struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	Name string `json:"name,omitempty"`
	Ext  string `json:"ext"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "paste_images",
		Description: "Save images next to a Markdown document under <name>_assets/, " +
			"named by their SHA-256, and return the Markdown image references to insert",
	}, s.handlePasteImages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_images",
		Description: "List the images paste_images would save for the given input, without writing anything",
	}, s.handleExtractImages)
}

// handlePasteImages handles the paste_images tool invocation.
func (s *Server) handlePasteImages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PasteImagesInput,
) (*mcp.CallToolResult, PasteImagesOutput, error) {
	p, err := buildPayload(input)
	if err != nil {
		return nil, PasteImagesOutput{}, err
	}

	result, err := s.ports.Paste.Paste(ctx, driving.PasteRequest{
		DocumentPath: input.Document,
		Payload:      p,
	})
	if err != nil {
		return nil, PasteImagesOutput{}, err
	}

	output := PasteImagesOutput{
		OperationID: result.OperationID,
		Markdown:    result.Markdown,
		AssetDir:    result.AssetDir,
		Assets:      make([]AssetOutput, len(result.Assets)),
	}
	for i, asset := range result.Assets {
		output.Assets[i] = AssetOutput{
			Path:     asset.Path,
			Identity: asset.Identity.String(),
			Created:  asset.Created,
		}
	}

	return nil, output, nil
}

// handleExtractImages handles the extract_images tool invocation.
func (s *Server) handleExtractImages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PasteImagesInput,
) (*mcp.CallToolResult, ExtractImagesOutput, error) {
	p, err := buildPayload(input)
	if err != nil {
		return nil, ExtractImagesOutput{}, err
	}

	sources, err := s.ports.Paste.Extract(ctx, p)
	if err != nil {
		return nil, ExtractImagesOutput{}, err
	}

	output := ExtractImagesOutput{
		Sources: make([]SourceOutput, len(sources)),
		Count:   len(sources),
	}
	for i, src := range sources {
		switch v := src.(type) {
		case domain.FilePathSource:
			output.Sources[i] = SourceOutput{Kind: "file", Path: v.Path, Ext: v.Ext}
		case domain.InlineDataSource:
			output.Sources[i] = SourceOutput{Kind: "inline", Name: v.File.Name(), Ext: v.Ext}
		}
	}

	return nil, output, nil
}

// buildPayload turns tool input into a paste payload. Paths become a file
// drop, inline images with a direct image MIME type become direct entries
// and the rest are embedded files.
func buildPayload(input PasteImagesInput) (*payload.Payload, error) {
	p := payload.New()

	if input.URIList != "" {
		p.Set(domain.URIListMIMEType, payload.StringItem(input.URIList))
	}

	for _, arg := range input.Paths {
		path, err := filesystem.ResolvePath(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: path %q: %w", domain.ErrInvalidInput, arg, err)
		}
		p.Add(domain.FilesMIMEType, payload.FileItem{
			Handle: payload.NewDiskFile(filepath.Base(path), path).WithOrigin(),
		})
	}

	for i, img := range input.Inline {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: inline[%d]: %w", domain.ErrInvalidInput, i, err)
		}
		item := payload.FileItem{Handle: payload.NewBytesFile(img.Name, data, "")}
		if domain.IsDirectImageMIMEType(img.MIMEType) {
			p.Set(img.MIMEType, item)
			continue
		}
		p.Add(domain.FilesMIMEType, item)
	}

	return p, nil
}
