package exporter

import "errors"

// Error definitions for the exporter view.
var (
	// ErrNoLoaderService indicates that no loader service was provided.
	ErrNoLoaderService = errors.New("loader service is required")

	// ErrNoDispatchService indicates that no dispatch service was provided.
	ErrNoDispatchService = errors.New("dispatch service is required")
)
