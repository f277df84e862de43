package tui

import "errors"

// ErrMissingLoaderService is returned when the loader service is not provided.
var ErrMissingLoaderService = errors.New("tui: loader service is required")

// ErrMissingFinderService is returned when the finder service is not provided.
var ErrMissingFinderService = errors.New("tui: finder service is required")

// ErrMissingDispatchService is returned when the dispatch service is not provided.
var ErrMissingDispatchService = errors.New("tui: dispatch service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
