// Package tui provides an interactive terminal user interface for gifex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Loader parses export files.
	Loader driving.LoaderService

	// Finder locates the GIF list in a loaded document.
	Finder driving.FinderService

	// Dispatch opens links in the browser.
	Dispatch driving.DispatchService

	// Settings provides the key path, policy and open options. Optional.
	Settings driving.SettingsService

	// Watch follows the loaded file for changes. Optional.
	Watch driving.WatchService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	loader driving.LoaderService,
	finder driving.FinderService,
	dispatch driving.DispatchService,
) *Ports {
	return &Ports{
		Loader:   loader,
		Finder:   finder,
		Dispatch: dispatch,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Loader == nil {
		return ErrMissingLoaderService
	}
	if p.Finder == nil {
		return ErrMissingFinderService
	}
	if p.Dispatch == nil {
		return ErrMissingDispatchService
	}
	return nil
}
