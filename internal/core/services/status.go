package services

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
	"github.com/transrapport/doclint/internal/core/ports/driving"
	"github.com/transrapport/doclint/internal/logger"
)

var _ driving.StatusReporter = (*StatusService)(nil)

// StatusService answers status queries from the latest stored run, and
// revalidates on demand when no run is cached.
type StatusService struct {
	engine *ValidationEngine
	runs   driven.RunStore // optional; nil forces revalidation
}

// NewStatusService creates the status service. runs may be nil.
func NewStatusService(engine *ValidationEngine, runs driven.RunStore) *StatusService {
	return &StatusService{engine: engine, runs: runs}
}

// Status reports the last-known per-file validation status for the
// corpus at root.
func (s *StatusService) Status(ctx context.Context, root string) (*driving.StatusReport, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if s.runs != nil {
		run, err := s.runs.LatestRun(ctx, absRoot)
		switch {
		case err == nil:
			logger.Debug("status: answering from run %s", run.ID)
			return statusFromRun(run, true), nil
		case errors.Is(err, domain.ErrNoRun):
			logger.Debug("status: no cached run for %s", absRoot)
		default:
			logger.Warn("reading run cache: %v", err)
		}
	}

	// No usable cache: validate now. The engine persists the fresh run,
	// so the next status call is answered from the cache.
	report, refs, index, err := s.engine.run(ctx, absRoot, domain.DefaultConfig())
	if err != nil {
		return nil, err
	}
	broken := 0
	for i := range refs {
		if !refs[i].Valid {
			broken++
		}
	}
	run := &domain.RunRecord{
		RanAt:                time.Now(),
		Report:               *report,
		TermCount:            index.Len(),
		ReferenceCount:       len(refs),
		BrokenReferenceCount: broken,
	}
	return statusFromRun(run, false), nil
}

// statusFromRun projects a run record into a status report.
func statusFromRun(run *domain.RunRecord, fromCache bool) *driving.StatusReport {
	overall := domain.StatusValid
	if len(run.Report.Files) == 0 {
		overall = domain.StatusNotValidated
	}
	for _, f := range run.Report.Files {
		if f.Status == domain.StatusInvalid {
			overall = domain.StatusInvalid
			break
		}
		if f.Status == domain.StatusNotValidated {
			overall = domain.StatusNotValidated
		}
	}

	return &driving.StatusReport{
		Files:          run.Report.Files,
		Overall:        overall,
		LastValidation: run.RanAt,
		Statistics: driving.StatusStatistics{
			TotalTerms:       run.TermCount,
			TotalReferences:  run.ReferenceCount,
			BrokenReferences: run.BrokenReferenceCount,
		},
		FromCache: fromCache,
	}
}
