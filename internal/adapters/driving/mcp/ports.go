package mcp

import (
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Codebook drives ingestion, derivation and row editing.
	Codebook driving.CodebookService

	// Annotation records phase 1 annotations. Optional.
	Annotation driving.AnnotationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Codebook == nil {
		return ErrMissingCodebookService
	}
	return nil
}
