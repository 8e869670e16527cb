package driven

import (
	"context"

	"github.com/transrapport/doclint/internal/core/domain"
)

// RunStore persists validation runs so the status command can answer
// without a re-scan. Persistence is a pure cache: the engine never reads
// it to change validation behaviour.
type RunStore interface {
	// SaveRun stores a completed run.
	SaveRun(ctx context.Context, run domain.RunRecord) error

	// LatestRun returns the most recent run for a corpus root.
	// Returns domain.ErrNoRun when none is recorded.
	LatestRun(ctx context.Context, root string) (*domain.RunRecord, error)

	// Close releases store resources.
	Close() error
}
