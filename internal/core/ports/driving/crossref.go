package driving

import (
	"context"

	"github.com/transrapport/doclint/internal/core/domain"
)

// CrossRefFilter restricts a cross-reference report.
type CrossRefFilter struct {
	// Term, when set, keeps only references whose term contains the
	// value (case-insensitive).
	Term string

	// File, when set, keeps only references observed in that file.
	File string
}

// CrossRefReport is a read-only projection of cross-reference validation.
type CrossRefReport struct {
	// TermCount is the number of distinct referenced terms.
	TermCount int `json:"term_count"`

	// References are all observed references, sorted by (file, line).
	References []domain.CrossReference `json:"references"`

	// Broken are the references that failed to resolve.
	Broken []domain.CrossReference `json:"broken_links"`
}

// CrossReferencer produces cross-reference reports over a corpus.
type CrossReferencer interface {
	// CrossReferences validates references across the corpus at root
	// and returns the filtered report.
	CrossReferences(ctx context.Context, root string, filter CrossRefFilter) (*CrossRefReport, error)
}
