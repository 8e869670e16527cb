// Package tui provides an interactive findings browser for doclint.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driving"
)

// Ports aggregates the dependencies required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Validator runs the validation pipeline.
	Validator driving.Validator

	// Root is the corpus root directory to validate.
	Root string

	// Config is the validation configuration to use.
	Config domain.Config
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Validator == nil {
		return ErrMissingValidator
	}
	return nil
}
