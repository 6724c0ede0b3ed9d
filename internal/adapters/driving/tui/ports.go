package tui

import (
	"context"

	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driving"
)

// Ports holds the service interfaces the TUI drives.
//
// Resolver and Saver are required; Templates is optional and enables
// the template summary plus live reload when the store also implements
// TemplateWatcher.
type Ports struct {
	// Resolver resolves identifiers to documents.
	Resolver driving.Resolver

	// Saver persists retrieved documents.
	Saver driven.FileSaver

	// Templates supplies the configured URL template groups.
	Templates driven.TemplateStore
}

// TemplateWatcher is an optional capability of a TemplateStore: it
// emits an event whenever the backing configuration changes on disk.
type TemplateWatcher interface {
	// Watch returns a channel that receives an event per configuration
	// change. The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// NewPorts creates a Ports struct with the given services.
func NewPorts(
	resolver driving.Resolver,
	saver driven.FileSaver,
	templates driven.TemplateStore,
) *Ports {
	return &Ports{
		Resolver:  resolver,
		Saver:     saver,
		Templates: templates,
	}
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	if p.Saver == nil {
		return ErrMissingSaver
	}
	return nil
}
