// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Transport: Performs one bounded HTTP fetch of a candidate URL
//
// # Optional Interfaces
//
// These are wired by the hosting environment rather than the core:
//
//   - FileSaver: Persists a retrieved document (the save-as-file capability)
//   - TemplateStore: Supplies the static URL template configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
