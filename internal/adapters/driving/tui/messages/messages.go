// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/transrapport/doclint/internal/core/domain"
)

// ValidationCompleted carries a finished validation run back to the model.
type ValidationCompleted struct {
	Report *domain.Report
	Err    error
}

// RevalidationRequested is a command to run the validation pipeline again.
type RevalidationRequested struct{}

// Quit signals the application should exit.
type Quit struct{}
