// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and when persistence is disabled.
package memory

import (
	"context"
	"sync"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
)

var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore. Runs are
// kept per corpus root for the lifetime of the process.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string][]domain.RunRecord // root -> runs, append order
}

// NewRunStore creates an empty in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string][]domain.RunRecord)}
}

// SaveRun stores a completed validation run.
func (s *RunStore) SaveRun(_ context.Context, run domain.RunRecord) error {
	if run.ID == "" || run.Root == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.Root] = append(s.runs[run.Root], run)
	return nil
}

// LatestRun returns the most recent run for a corpus root.
func (s *RunStore) LatestRun(_ context.Context, root string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.runs[root]
	if len(runs) == 0 {
		return nil, domain.ErrNoRun
	}

	latest := runs[0]
	for _, run := range runs[1:] {
		if !run.RanAt.Before(latest.RanAt) {
			latest = run
		}
	}
	return &latest, nil
}

// Close releases store resources. A no-op for the in-memory store.
func (s *RunStore) Close() error {
	return nil
}
