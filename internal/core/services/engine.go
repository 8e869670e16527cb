package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
	"github.com/transrapport/doclint/internal/core/ports/driving"
	"github.com/transrapport/doclint/internal/logger"
)

// Interface checks.
var (
	_ driving.Validator       = (*ValidationEngine)(nil)
	_ driving.CrossReferencer = (*ValidationEngine)(nil)
)

// Rules whose warnings become errors in strict mode. Cross-reference
// anchor warnings keep their severity; strict mode fails on them through
// the success condition instead.
var strictEscalatedRules = map[string]bool{
	domain.RuleMarkdownStructure:   true,
	domain.RuleMarkdownSyntax:      true,
	domain.RuleContentComplete:     true,
	domain.RuleTerminologyComplete: true,
	domain.RuleLDCompliance:        true,
}

// ValidationEngine orchestrates the validation pipeline: scan, parse,
// extract terminology, run content rules, validate cross-references,
// aggregate. Safe for concurrent use.
type ValidationEngine struct {
	scanner  driven.CorpusScanner
	parser   driven.Parser
	terms    *TerminologyExtractor
	crossref *CrossReferenceValidator
	rules    *ContentRules
	runs     driven.RunStore // optional; nil disables the run cache
}

// NewValidationEngine creates the engine. runs may be nil, in which case
// runs are not persisted and the status command always revalidates.
func NewValidationEngine(scanner driven.CorpusScanner, parser driven.Parser, runs driven.RunStore) *ValidationEngine {
	return &ValidationEngine{
		scanner:  scanner,
		parser:   parser,
		terms:    NewTerminologyExtractor(),
		crossref: NewCrossReferenceValidator(),
		rules:    NewContentRules(),
		runs:     runs,
	}
}

// Validate runs the full pipeline over the corpus at root.
func (e *ValidationEngine) Validate(ctx context.Context, root string, cfg domain.Config) (*domain.Report, error) {
	report, _, _, err := e.run(ctx, root, cfg)
	return report, err
}

// CrossReferences runs the pipeline and projects the cross-reference
// view, filtered as requested.
func (e *ValidationEngine) CrossReferences(ctx context.Context, root string, filter driving.CrossRefFilter) (*driving.CrossRefReport, error) {
	_, refs, _, err := e.run(ctx, root, domain.DefaultConfig())
	if err != nil {
		return nil, err
	}

	filtered := filterReferences(refs, filter)

	report := &driving.CrossRefReport{References: filtered}
	seen := make(map[string]bool)
	for i := range filtered {
		if !seen[filtered[i].Term] {
			seen[filtered[i].Term] = true
			report.TermCount++
		}
		if !filtered[i].Valid {
			report.Broken = append(report.Broken, filtered[i])
		}
	}
	return report, nil
}

// run executes the pipeline and returns the report plus the artefacts the
// other driving ports project from.
func (e *ValidationEngine) run(ctx context.Context, root string, cfg domain.Config) (*domain.Report, []domain.CrossReference, *domain.TermIndex, error) {
	started := time.Now()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolving corpus root: %w", err)
	}

	logger.Section("Validation")
	logger.Debug("corpus root: %s", absRoot)

	paths, err := e.scanner.Scan(ctx, absRoot)
	if err != nil {
		return nil, nil, nil, err
	}

	files, findings := e.parseAll(ctx, paths, cfg)
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	index, termFindings := e.terms.Extract(files)
	findings = append(findings, termFindings...)

	findings = append(findings, e.rules.Check(files, index, cfg)...)

	refs, refFindings, _ := e.crossref.Validate(files, index, cfg)
	findings = append(findings, refFindings...)

	findings = e.finalise(findings, cfg)
	summary := domain.Summarise(findings)

	report := &domain.Report{
		Success:   summary.Errors == 0 && (!cfg.Strict || summary.Warnings == 0),
		FileCount: len(paths),
		Issues:    findings,
		Summary:   summary,
		Files:     fileStatuses(files, findings),
	}

	logger.Debug("validated %d files in %s: %d errors, %d warnings, %d info",
		len(paths), time.Since(started).Round(time.Millisecond),
		summary.Errors, summary.Warnings, summary.Info)

	e.saveRun(ctx, absRoot, cfg, report, index, refs)

	return report, refs, index, nil
}

// parseAll parses the corpus with a bounded worker pool. Slot indexing
// keeps corpus order; unparseable files become error findings and are
// excluded from the parsed set but still counted.
func (e *ValidationEngine) parseAll(ctx context.Context, paths []string, cfg domain.Config) ([]domain.DocumentationFile, []domain.ValidationResult) {
	workers := cfg.ParseWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]*driven.ParseResult, len(paths))
	errs := make([]error, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = e.parser.Parse(ctx, paths[i])
			}
		}()
	}

dispatch:
	for i := 0; i < len(paths); i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	var files []domain.DocumentationFile
	var findings []domain.ValidationResult
	for i := range paths {
		switch {
		case errs[i] != nil:
			findings = append(findings, domain.NewError(paths[i], domain.RuleFileParsing,
				fmt.Sprintf("Cannot read file: %v", errs[i])))
		case results[i] != nil:
			files = append(files, results[i].File)
			findings = append(findings, results[i].Findings...)
		}
	}
	return files, findings
}

// finalise filters findings to the targeted files, applies strict
// escalation, and sorts for deterministic output.
func (e *ValidationEngine) finalise(findings []domain.ValidationResult, cfg domain.Config) []domain.ValidationResult {
	out := make([]domain.ValidationResult, 0, len(findings))
	for _, f := range findings {
		if !cfg.Targeted(f.FilePath) {
			continue
		}
		if strictEscalatedRules[f.RuleName] {
			f = f.Escalated(cfg.Strict)
		}
		out = append(out, f)
	}
	domain.SortResults(out)
	return out
}

// fileStatuses derives the per-file outcomes from the final findings,
// core documentation files first.
func fileStatuses(files []domain.DocumentationFile, findings []domain.ValidationResult) []domain.FileStatus {
	type counts struct{ errors, warnings int }
	perFile := make(map[string]counts)
	for i := range findings {
		c := perFile[findings[i].FilePath]
		switch findings[i].Severity {
		case domain.SeverityError:
			c.errors++
		case domain.SeverityWarning:
			c.warnings++
		}
		perFile[findings[i].FilePath] = c
	}

	now := time.Now()
	statuses := make([]domain.FileStatus, 0, len(files))
	for i := range files {
		c := perFile[files[i].Path]
		status := domain.StatusValid
		if c.errors > 0 {
			status = domain.StatusInvalid
		}
		statuses = append(statuses, domain.FileStatus{
			Path:          files[i].Path,
			Name:          files[i].Name,
			Role:          files[i].Role,
			Status:        status,
			Fingerprint:   files[i].Fingerprint,
			LastValidated: now,
			Errors:        c.errors,
			Warnings:      c.warnings,
		})
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		pi, pj := rolePriority(statuses[i].Role), rolePriority(statuses[j].Role)
		if pi != pj {
			return pi < pj
		}
		return statuses[i].Path < statuses[j].Path
	})
	return statuses
}

// rolePriority orders the core documentation files ahead of the rest.
func rolePriority(role domain.FileRole) int {
	switch role {
	case domain.RoleTransrapport:
		return 0
	case domain.RoleArchitecture:
		return 1
	case domain.RoleTerminology:
		return 2
	case domain.RoleMarker:
		return 3
	default:
		return 4
	}
}

// saveRun persists the run. The store is a cache; failures degrade to a
// warning rather than failing the validation.
func (e *ValidationEngine) saveRun(ctx context.Context, root string, cfg domain.Config, report *domain.Report, index *domain.TermIndex, refs []domain.CrossReference) {
	if e.runs == nil {
		return
	}

	broken := 0
	for i := range refs {
		if !refs[i].Valid {
			broken++
		}
	}

	run := domain.RunRecord{
		ID:                   uuid.NewString(),
		Root:                 root,
		Strict:               cfg.Strict,
		RanAt:                time.Now(),
		Report:               *report,
		TermCount:            index.Len(),
		ReferenceCount:       len(refs),
		BrokenReferenceCount: broken,
	}
	if err := e.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("saving run: %v", err)
	}
}

// filterReferences applies a cross-reference filter.
func filterReferences(refs []domain.CrossReference, filter driving.CrossRefFilter) []domain.CrossReference {
	if filter.Term == "" && filter.File == "" {
		return refs
	}

	term := strings.ToLower(filter.Term)
	var out []domain.CrossReference
	for i := range refs {
		if term != "" && !strings.Contains(strings.ToLower(refs[i].Term), term) {
			continue
		}
		if filter.File != "" && refs[i].SourceFile != filter.File &&
			filepath.Base(refs[i].SourceFile) != filter.File {
			continue
		}
		out = append(out, refs[i])
	}
	return out
}
