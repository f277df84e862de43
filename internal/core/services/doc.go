// Package services implements the driving port interfaces.
// Services contain the core logic (parsing, key search, projection,
// dispatch) and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO and no UI dependencies.
package services
