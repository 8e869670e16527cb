package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/logger"
)

var cliCommandPattern = regexp.MustCompile("`(me\\s+[a-z][^`]*)`")

// TerminologyExtractor builds the term index from the parsed file set.
type TerminologyExtractor struct{}

// NewTerminologyExtractor creates a terminology extractor.
func NewTerminologyExtractor() *TerminologyExtractor {
	return &TerminologyExtractor{}
}

// Extract scans the terminology files in corpus order and returns the
// term index plus extraction findings. When the corpus has no dedicated
// terminology file, every file contributes definitions.
//
// A term defined twice with a different definition is overwritten and
// reported as info: the corpus does not guarantee single-authorship
// ordering, so overwrite-with-notice is the safer default.
func (e *TerminologyExtractor) Extract(files []domain.DocumentationFile) (*domain.TermIndex, []domain.ValidationResult) {
	index := domain.NewTermIndex()
	var findings []domain.ValidationResult

	sources := terminologySources(files)
	for i := range sources {
		findings = append(findings, e.extractFile(index, &sources[i])...)
	}

	logger.Debug("terminology: %d terms from %d files", index.Len(), len(sources))
	return index, findings
}

// extractFile adds one file's definitions and CLI commands to the index.
func (e *TerminologyExtractor) extractFile(index *domain.TermIndex, file *domain.DocumentationFile) []domain.ValidationResult {
	var findings []domain.ValidationResult

	for _, def := range file.Definitions {
		entry := domain.TerminologyEntry{
			Term:       def.Term,
			Definition: def.Definition,
			Aliases:    def.Aliases,
			Category:   domain.CategoriseTerm(def.Term),
			SourceFile: file.Path,
			Line:       def.Line,
		}
		if entry.Category == domain.CategoryMarkerLevel {
			entry.Aliases = withUnderscoreAlias(entry.Term, entry.Aliases)
		}

		prev := index.Put(entry)
		if prev != nil && prev.Definition != entry.Definition {
			findings = append(findings, domain.NewInfo(file.Path, domain.RuleTerminology,
				fmt.Sprintf("redefinition of %s", entry.Term)).
				AtLine(def.Line).
				WithSuggestion(fmt.Sprintf("Previous definition at %s line %d", prev.SourceFile, prev.Line)))
		}
	}

	e.extractCLICommands(index, file)

	return findings
}

// extractCLICommands records documented `me ...` commands. Commands
// appear as level-3 headings or backticked spans; the heading form takes
// its definition from the following prose lines.
func (e *TerminologyExtractor) extractCLICommands(index *domain.TermIndex, file *domain.DocumentationFile) {
	lines := file.Lines()

	for _, h := range file.Headings {
		cmd := strings.TrimSpace(h.Text)
		if !strings.HasPrefix(cmd, "me ") {
			continue
		}
		index.Put(domain.TerminologyEntry{
			Term:       cmd,
			Definition: commandDefinition(lines, h.Line, cmd),
			Category:   domain.CategoryCLICommand,
			SourceFile: file.Path,
			Line:       h.Line,
		})
	}

	for i, line := range lines {
		for _, m := range cliCommandPattern.FindAllStringSubmatch(line, -1) {
			cmd := strings.TrimSpace(m[1])
			if index.Has(cmd) {
				continue
			}
			index.Put(domain.TerminologyEntry{
				Term:       cmd,
				Definition: fmt.Sprintf("CLI command: %s", cmd),
				Category:   domain.CategoryCLICommand,
				SourceFile: file.Path,
				Line:       i + 1,
			})
		}
	}
}

// commandDefinition collects the prose lines following a command heading.
func commandDefinition(lines []string, headingLine int, cmd string) string {
	var collected []string
	for i := headingLine; i < len(lines) && len(collected) < 3; i++ {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "#") {
			break
		}
		if line == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		collected = append(collected, line)
	}
	if len(collected) == 0 {
		return fmt.Sprintf("CLI command: %s", cmd)
	}
	return strings.Join(collected, " ")
}

// terminologySources picks the files that contribute definitions:
// terminology-role files when present, the whole corpus otherwise.
func terminologySources(files []domain.DocumentationFile) []domain.DocumentationFile {
	var sources []domain.DocumentationFile
	for i := range files {
		if files[i].Role == domain.RoleTerminology {
			sources = append(sources, files[i])
		}
	}
	if len(sources) == 0 {
		return files
	}
	return sources
}

// withUnderscoreAlias adds the marker-ID prefix form ("ATO_") used
// throughout the corpus to reference marker levels.
func withUnderscoreAlias(term string, aliases []string) []string {
	underscore := term + "_"
	for _, a := range aliases {
		if a == underscore {
			return aliases
		}
	}
	return append(aliases, underscore)
}
