package domain

import "errors"

// Domain errors represent resolution failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidIdentifier indicates input that fails the 12-digit shape contract.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidTemplate indicates a malformed URL template.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrNotFound indicates every candidate was exhausted without a verified match.
	ErrNotFound = errors.New("document not found")

	// ErrTransferFailed indicates the committed download of a verified candidate failed.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrNoTemplates indicates resolution was attempted with no template groups configured.
	ErrNoTemplates = errors.New("no template groups configured")

	// ErrNotConfigured indicates a required collaborator was not provided.
	ErrNotConfigured = errors.New("not configured")
)
