package driven

import (
	"context"

	"github.com/transrapport/doclint/internal/core/domain"
)

// CorpusScanner lists the documentation files under a corpus root.
type CorpusScanner interface {
	// Scan returns the markdown file paths under root in a stable,
	// sorted order. Returns domain.ErrEmptyCorpus when root is
	// unreadable or contains no markdown files.
	Scan(ctx context.Context, root string) ([]string, error)
}

// CorpusChange is one observed change to the corpus.
type CorpusChange struct {
	// Path is the affected file.
	Path string

	// Type is the kind of change.
	Type domain.ChangeType
}

// CorpusWatcher emits change events for a corpus root.
type CorpusWatcher interface {
	// Watch starts watching root and returns a channel of changes.
	// The channel is closed when the context is cancelled.
	Watch(ctx context.Context, root string) (<-chan CorpusChange, error)

	// Close releases watcher resources.
	Close() error
}
