// Package driving defines the interfaces through which the outside
// world drives the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Driving adapters (CLI, TUI) depend on these interfaces, and core
// services implement them.
//
// # Interfaces
//
//   - Resolver: Resolves an identifier to a document by probing
//     candidate URLs
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package, driven ports
package driving
