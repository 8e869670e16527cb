package driven

import (
	"context"

	"github.com/transrapport/doclint/internal/core/domain"
)

// ParseResult is the output of parsing one file.
type ParseResult struct {
	// File is the parsed file with headings, links, and definitions.
	File domain.DocumentationFile

	// Findings are parse-time findings: encoding recovery notices and
	// link syntax issues.
	Findings []domain.ValidationResult
}

// Parser extracts the structural skeleton of a documentation file.
// Parsing is read-only and idempotent: re-parsing an unchanged file
// yields an identical result apart from timestamps.
type Parser interface {
	// Parse reads and parses the file at path. It returns an error only
	// when the file cannot be read at all; recoverable conditions
	// (invalid UTF-8, unbalanced links) surface as findings.
	Parse(ctx context.Context, path string) (*ParseResult, error)
}
