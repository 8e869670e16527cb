package domain

import "time"

// RunRecord is one completed validation run, as persisted by a run
// store. The status command answers from the latest record without
// re-scanning the corpus.
type RunRecord struct {
	// ID is a unique run identifier.
	ID string

	// Root is the corpus root the run covered.
	Root string

	// Strict records whether strict mode was set.
	Strict bool

	// RanAt is when the run completed.
	RanAt time.Time

	// Report is the aggregated run output.
	Report Report

	// TermCount is the number of canonical terms in the run's index.
	TermCount int

	// ReferenceCount is the number of observed cross-references.
	ReferenceCount int

	// BrokenReferenceCount is the number of unresolved references.
	BrokenReferenceCount int
}
