package tui

import "errors"

var (
	// ErrInvalidPorts indicates the ports struct itself is missing.
	ErrInvalidPorts = errors.New("tui: ports are required")

	// ErrMissingResolver indicates no resolver service was provided.
	ErrMissingResolver = errors.New("tui: resolver is required")

	// ErrMissingSaver indicates no file saver was provided.
	ErrMissingSaver = errors.New("tui: file saver is required")
)
