package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/transrapport/doclint/internal/core/domain"
)

// ContentRules checks the per-file and corpus-level content requirements:
// document structure, content completeness, terminology completeness, and
// marker specification compliance.
type ContentRules struct{}

// NewContentRules creates the content rule set.
func NewContentRules() *ContentRules {
	return &ContentRules{}
}

// Check runs all content rules over the parsed corpus. Per-file rules
// honour the config's target list; the terminology completeness rule is
// corpus-level and always runs.
func (r *ContentRules) Check(files []domain.DocumentationFile, index *domain.TermIndex, cfg domain.Config) []domain.ValidationResult {
	var findings []domain.ValidationResult

	for i := range files {
		file := &files[i]
		if !cfg.Targeted(file.Path) {
			continue
		}
		findings = append(findings, r.checkStructure(file)...)
		findings = append(findings, r.checkCompleteness(file, cfg)...)
		findings = append(findings, r.checkCompliance(file, cfg)...)
	}

	findings = append(findings, r.checkTerminology(files, index, cfg)...)

	return findings
}

// checkStructure requires a main title.
func (r *ContentRules) checkStructure(file *domain.DocumentationFile) []domain.ValidationResult {
	if file.Title != "" {
		return nil
	}
	return []domain.ValidationResult{
		domain.NewWarning(file.Path, domain.RuleMarkdownStructure,
			"Document should start with a main title (# Title)").
			AtLine(1).
			WithSuggestion("Add a level-1 heading at the top of the document"),
	}
}

// checkCompleteness flags files whose content falls under the floor.
// The floor counts characters, not bytes; umlauts are one character.
func (r *ContentRules) checkCompleteness(file *domain.DocumentationFile, cfg domain.Config) []domain.ValidationResult {
	if utf8.RuneCountInString(strings.TrimSpace(file.Content)) >= cfg.MinContentLength {
		return nil
	}
	return []domain.ValidationResult{
		domain.NewWarning(file.Path, domain.RuleContentComplete,
			fmt.Sprintf("Content seems too short (less than %d characters)", cfg.MinContentLength)).
			WithSuggestion("Expand the document or remove it from the corpus"),
	}
}

// checkCompliance requires the marker specification file to reference
// the compliance keyword.
func (r *ContentRules) checkCompliance(file *domain.DocumentationFile, cfg domain.Config) []domain.ValidationResult {
	if file.Role != domain.RoleMarker || cfg.ComplianceKeyword == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(file.Content), strings.ToLower(cfg.ComplianceKeyword)) {
		return nil
	}
	return []domain.ValidationResult{
		domain.NewWarning(file.Path, domain.RuleLDCompliance,
			fmt.Sprintf("No mention of %s specification found", cfg.ComplianceKeyword)).
			WithSuggestion(fmt.Sprintf("Marker documentation must state %s compliance", cfg.ComplianceKeyword)),
	}
}

// checkTerminology requires the terminology file to define all required
// terms. The finding attaches to the terminology file when one exists,
// to the first corpus file otherwise.
func (r *ContentRules) checkTerminology(files []domain.DocumentationFile, index *domain.TermIndex, cfg domain.Config) []domain.ValidationResult {
	missing := index.Missing(cfg.RequiredTerms)
	if len(missing) == 0 || len(files) == 0 {
		return nil
	}

	target := files[0].Path
	for i := range files {
		if files[i].Role == domain.RoleTerminology {
			target = files[i].Path
			break
		}
	}

	return []domain.ValidationResult{
		domain.NewWarning(target, domain.RuleTerminologyComplete,
			fmt.Sprintf("Missing key marker terms: %s", strings.Join(missing, ", "))).
			WithSuggestion("Define each marker level with a bold-term entry, e.g. **ATO** · definition"),
	}
}
