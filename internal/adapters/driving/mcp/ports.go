package mcp

import (
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Loader parses export files.
	Loader driving.LoaderService

	// Finder locates the GIF list in a loaded document.
	Finder driving.FinderService

	// Settings supplies the default key path and policy. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Loader == nil {
		return ErrMissingLoaderService
	}
	if p.Finder == nil {
		return ErrMissingFinderService
	}
	return nil
}
