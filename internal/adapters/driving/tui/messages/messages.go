// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewFetch is the identifier input and probe trace view.
	ViewFetch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewFetch:
		return "fetch"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FetchRequested is a command to resolve an identifier.
type FetchRequested struct {
	Input string
}

// ProbeLogged carries one probe result while a resolution runs.
type ProbeLogged struct {
	Result domain.ProbeResult
}

// FetchCompleted carries the terminal outcome back to the model.
type FetchCompleted struct {
	Outcome *domain.Outcome
	Err     error
}

// DocumentSaved signals the fetched document was written to disk.
type DocumentSaved struct {
	Path string
	Err  error
}

// TemplatesReloaded signals the template configuration was reloaded.
type TemplatesReloaded struct {
	Groups int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
