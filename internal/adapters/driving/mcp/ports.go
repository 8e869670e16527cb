package mcp

import (
	"github.com/transrapport/doclint/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Validator runs corpus validation.
	Validator driving.Validator

	// CrossReferencer produces cross-reference reports.
	CrossReferencer driving.CrossReferencer

	// Status reports per-file validation status.
	Status driving.StatusReporter
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Validator == nil {
		return ErrMissingValidator
	}
	// CrossReferencer and Status are optional; their tools are
	// registered only when present.
	return nil
}
