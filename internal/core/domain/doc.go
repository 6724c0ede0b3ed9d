// Package domain defines the core business entities for Specfetch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Identifier: A 12-digit numeric product code (12NC)
//   - Template / TemplateGroup: Ordered URL patterns for one API generation
//   - ProbeResult / Trace: The verdict for each probed candidate URL
//   - Document: A retrieved specification payload
//   - Outcome: The terminal value of a resolution call
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
