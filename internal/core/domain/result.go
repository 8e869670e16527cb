package domain

import (
	"fmt"
	"sort"
	"time"
)

// Severity classifies a validation finding. Only errors (and, in strict
// mode, warnings) make a run fail; info findings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rule names for validation findings.
const (
	RuleFileParsing         = "file_parsing"
	RuleEncoding            = "encoding"
	RuleMarkdownStructure   = "markdown_structure"
	RuleMarkdownSyntax      = "markdown_syntax"
	RuleContentComplete     = "content_completeness"
	RuleTerminologyComplete = "terminology_completeness"
	RuleTerminology         = "terminology"
	RuleCrossReference      = "cross_reference"
	RuleLDCompliance        = "ld_compliance"
	RuleOrphanFile          = "orphan_file"
)

// ValidationResult is one finding. Immutable once created.
type ValidationResult struct {
	// FilePath is the file the finding applies to.
	FilePath string `json:"file_path"`

	// RuleName identifies the rule that produced the finding.
	RuleName string `json:"rule_name"`

	// Severity is the finding severity.
	Severity Severity `json:"severity"`

	// Line is the 1-based line number, or nil when the finding applies
	// to the whole file.
	Line *int `json:"line_number"`

	// Message is the human-readable description. Never empty.
	Message string `json:"message"`

	// Suggestion is an optional suggested fix.
	Suggestion string `json:"suggestion,omitempty"`

	// ValidatedAt is when the finding was created.
	ValidatedAt time.Time `json:"validated_at"`
}

// NewError creates an error-level finding.
func NewError(filePath, rule, message string) ValidationResult {
	return ValidationResult{
		FilePath:    filePath,
		RuleName:    rule,
		Severity:    SeverityError,
		Message:     message,
		ValidatedAt: time.Now(),
	}
}

// NewWarning creates a warning-level finding.
func NewWarning(filePath, rule, message string) ValidationResult {
	return ValidationResult{
		FilePath:    filePath,
		RuleName:    rule,
		Severity:    SeverityWarning,
		Message:     message,
		ValidatedAt: time.Now(),
	}
}

// NewInfo creates an info-level finding.
func NewInfo(filePath, rule, message string) ValidationResult {
	return ValidationResult{
		FilePath:    filePath,
		RuleName:    rule,
		Severity:    SeverityInfo,
		Message:     message,
		ValidatedAt: time.Now(),
	}
}

// AtLine returns a copy of the finding with the line number set.
func (r ValidationResult) AtLine(line int) ValidationResult {
	r.Line = &line
	return r
}

// WithSuggestion returns a copy of the finding with a suggested fix.
func (r ValidationResult) WithSuggestion(s string) ValidationResult {
	r.Suggestion = s
	return r
}

// Escalated returns the finding raised to error severity when strict is
// set. Info findings are never escalated.
func (r ValidationResult) Escalated(strict bool) ValidationResult {
	if strict && r.Severity == SeverityWarning {
		r.Severity = SeverityError
	}
	return r
}

// Summary counts findings by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// Summarise counts findings by severity.
func Summarise(results []ValidationResult) Summary {
	var s Summary
	for i := range results {
		switch results[i].Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}

// Report is the aggregated output of one validation run.
type Report struct {
	// Success is false when any error exists, or when strict mode was
	// set and any warning exists.
	Success bool `json:"success"`

	// FileCount is the number of files in the run, including files
	// that failed to parse.
	FileCount int `json:"file_count"`

	// Issues are all findings, sorted by (file path, line).
	Issues []ValidationResult `json:"issues"`

	// Summary counts issues by severity.
	Summary Summary `json:"summary"`

	// Files are the per-file statuses after the run, sorted with core
	// files first.
	Files []FileStatus `json:"files,omitempty"`
}

// FileStatus is the per-file outcome of a run, used by the status report.
type FileStatus struct {
	Path          string           `json:"path"`
	Name          string           `json:"name"`
	Role          FileRole         `json:"role"`
	Status        ValidationStatus `json:"status"`
	Fingerprint   string           `json:"fingerprint,omitempty"`
	LastValidated time.Time        `json:"last_validated"`
	Errors        int              `json:"errors"`
	Warnings      int              `json:"warnings"`
}

// SortResults orders findings by (file path, line, rule). Nil lines sort
// before numbered ones so whole-file findings lead.
func SortResults(results []ValidationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FilePath != results[j].FilePath {
			return results[i].FilePath < results[j].FilePath
		}
		li, lj := lineOrZero(results[i].Line), lineOrZero(results[j].Line)
		if li != lj {
			return li < lj
		}
		return results[i].RuleName < results[j].RuleName
	})
}

// SortCrossReferences orders references by (file path, line, term).
func SortCrossReferences(refs []CrossReference) {
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].SourceFile != refs[j].SourceFile {
			return refs[i].SourceFile < refs[j].SourceFile
		}
		if refs[i].Line != refs[j].Line {
			return refs[i].Line < refs[j].Line
		}
		return refs[i].Term < refs[j].Term
	})
}

func lineOrZero(line *int) int {
	if line == nil {
		return 0
	}
	return *line
}

// Symbol returns the display marker for a severity.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "•"
	}
}

// String returns the upper-case display name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return fmt.Sprintf("UNKNOWN(%s)", string(s))
	}
}
