package driving

import (
	"context"

	"github.com/transrapport/doclint/internal/core/domain"
)

// Validator runs the full validation pipeline over a corpus.
type Validator interface {
	// Validate parses every file under root, extracts terminology, runs
	// the corpus-level content rules and cross-reference validation, and
	// returns the aggregated report. Each call is independent and
	// stateless with respect to prior calls.
	Validate(ctx context.Context, root string, cfg domain.Config) (*domain.Report, error)
}
