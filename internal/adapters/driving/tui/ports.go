// Package tui provides an interactive terminal editor for the codebook.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Codebook derives, edits and exports codebook rows.
	Codebook driving.CodebookService

	// Annotation exposes the phase 1 session. Optional.
	Annotation driving.AnnotationService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	codebook driving.CodebookService,
	annotation driving.AnnotationService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Codebook:   codebook,
		Annotation: annotation,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Codebook == nil {
		return ErrMissingCodebookService
	}
	return nil
}
