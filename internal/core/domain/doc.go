// Package domain defines the core types for gifex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Value: A parsed JSON value (tagged union with ordered objects)
//   - Document: A loaded export file
//   - ResultSet: Ordered identifier -> link mapping
//   - KeyPath: The container and list keys searched for
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
