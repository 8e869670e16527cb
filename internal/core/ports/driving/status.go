package driving

import (
	"context"
	"time"

	"github.com/transrapport/doclint/internal/core/domain"
)

// StatusStatistics summarises corpus-wide counts for the status report.
type StatusStatistics struct {
	TotalTerms       int `json:"total_terms"`
	TotalReferences  int `json:"total_references"`
	BrokenReferences int `json:"broken_references"`
}

// StatusReport is the per-file validation status summary.
type StatusReport struct {
	// Files lists per-file statuses, core documentation files first.
	Files []domain.FileStatus `json:"files"`

	// Overall is invalid if any file is invalid, not_validated if any
	// file has never been validated, valid otherwise.
	Overall domain.ValidationStatus `json:"overall_status"`

	// LastValidation is when the underlying run completed.
	LastValidation time.Time `json:"last_validation"`

	// Statistics are corpus-wide counts from the underlying run.
	Statistics StatusStatistics `json:"statistics"`

	// FromCache is true when the report was answered from a stored run
	// rather than a fresh scan.
	FromCache bool `json:"-"`
}

// StatusReporter reports last-known validation status per file. When a
// cached run exists for the root it is used; otherwise the corpus is
// revalidated on demand.
type StatusReporter interface {
	Status(ctx context.Context, root string) (*StatusReport, error)
}
