package fetch

import "errors"

// Error definitions for the fetch view.
var (
	// ErrNoResolver indicates that no resolver service was provided.
	ErrNoResolver = errors.New("resolver service is required")

	// ErrNoSaver indicates that no file saver was provided.
	ErrNoSaver = errors.New("file saver is required")
)
