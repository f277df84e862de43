// Package mcp provides an MCP (Model Context Protocol) server adapter for gifex.
// It lets AI assistants list the saved GIFs of a Discord data package.
package mcp

import (
	"errors"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

// ErrMissingLoaderService is returned when the loader service is not provided.
var ErrMissingLoaderService = errors.New("mcp: loader service is required")

// ErrMissingFinderService is returned when the finder service is not provided.
var ErrMissingFinderService = errors.New("mcp: finder service is required")

// toolError reports the banner text for err to the assistant while keeping
// err in the chain.
type toolError struct {
	err error
}

func (e *toolError) Error() string { return domain.UserMessage(e.err) }

func (e *toolError) Unwrap() error { return e.err }
