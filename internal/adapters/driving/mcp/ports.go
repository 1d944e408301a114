package mcp

import (
	"github.com/custodia-labs/mdpaste/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Paste runs the paste pipeline.
	Paste driving.PasteService

	// Settings exposes host configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Paste == nil {
		return ErrMissingPasteService
	}
	return nil
}
