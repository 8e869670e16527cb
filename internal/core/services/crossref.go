package services

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/logger"
)

var (
	// tokenPattern splits a line into word tokens for term-usage scanning.
	tokenPattern = regexp.MustCompile(`[A-Za-zÄÖÜäöüß][A-Za-z0-9ÄÖÜäöüß_-]*`)

	// upperTokenPattern matches all-caps tokens that look like marker or
	// acronym terms; candidates for the undefined-term scan.
	upperTokenPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]+$`)

	// linkTargetPattern locates inline link targets so the term scan can
	// mask them; file names are not term usages.
	linkTargetPattern = regexp.MustCompile(`\]\([^)]*\)`)
)

// CrossReferenceValidator resolves links and term usages across a corpus.
type CrossReferenceValidator struct{}

// NewCrossReferenceValidator creates a cross-reference validator.
func NewCrossReferenceValidator() *CrossReferenceValidator {
	return &CrossReferenceValidator{}
}

// Validate resolves every link and term usage against the corpus and term
// index. It returns the observed references, the findings, and the
// reference graph of resolved file links.
//
// Link targets resolve by base filename anywhere in the corpus, not by
// relative path: the corpus convention references files by name. A
// missing file is an error; a missing anchor in a present file is a
// warning; an undefined term is always informational.
func (v *CrossReferenceValidator) Validate(files []domain.DocumentationFile, index *domain.TermIndex, cfg domain.Config) ([]domain.CrossReference, []domain.ValidationResult, *domain.ReferenceGraph) {
	byName := make(map[string]*domain.DocumentationFile, len(files))
	paths := make([]string, 0, len(files))
	for i := range files {
		byName[filepath.Base(files[i].Path)] = &files[i]
		paths = append(paths, files[i].Path)
	}

	graph := domain.NewReferenceGraph(paths)
	multiWord := multiWordNames(index)
	var refs []domain.CrossReference
	var findings []domain.ValidationResult

	for i := range files {
		file := &files[i]

		linkRefs, linkFindings := v.checkLinks(file, byName, graph)
		refs = append(refs, linkRefs...)
		findings = append(findings, linkFindings...)

		termRefs, termFindings := v.checkTerms(file, index, multiWord, cfg)
		refs = append(refs, termRefs...)
		findings = append(findings, termFindings...)
	}

	for _, orphan := range graph.Orphans() {
		findings = append(findings, domain.NewInfo(orphan, domain.RuleOrphanFile,
			"File is not linked from any other document").
			WithSuggestion("Add a link to this file from an overview document, or remove it"))
	}

	domain.SortCrossReferences(refs)
	logger.Debug("cross-reference: %d references, %d findings", len(refs), len(findings))
	return refs, findings, graph
}

// checkLinks resolves a file's inline links against the corpus.
func (v *CrossReferenceValidator) checkLinks(file *domain.DocumentationFile, byName map[string]*domain.DocumentationFile, graph *domain.ReferenceGraph) ([]domain.CrossReference, []domain.ValidationResult) {
	var refs []domain.CrossReference
	var findings []domain.ValidationResult

	lines := file.Lines()

	for _, link := range file.Links {
		if link.External {
			continue
		}

		ref := domain.CrossReference{
			Term:       link.Target,
			SourceFile: file.Path,
			Line:       link.Line,
			Context:    lineContext(lines, link.Line),
			Kind:       domain.KindLink,
			Valid:      true,
		}

		target := file
		if link.File != "" {
			resolved, ok := byName[filepath.Base(link.File)]
			if !ok {
				ref.Valid = false
				refs = append(refs, ref)
				findings = append(findings, domain.NewError(file.Path, domain.RuleCrossReference,
					fmt.Sprintf("Broken link: file not found: %s", link.File)).
					AtLine(link.Line).
					WithSuggestion("Check the file name, or create the missing document"))
				continue
			}
			target = resolved
			graph.AddEdge(file.Path, target.Path)
		}

		if link.Anchor != "" && !target.HasAnchor(link.Anchor) {
			ref.Valid = false
			findings = append(findings, domain.NewWarning(file.Path, domain.RuleCrossReference,
				fmt.Sprintf("Broken link: anchor not found: #%s in %s", link.Anchor, filepath.Base(target.Path))).
				AtLine(link.Line).
				WithSuggestion("Anchors are derived from headings: lowercase, punctuation removed, spaces as hyphens"))
		}

		refs = append(refs, ref)
	}

	return refs, findings
}

// checkTerms scans a file for term usages and undefined-looking terms.
// Single-word names resolve through the token scan; names containing
// whitespace are matched by a whole-word substring scan, since the
// tokenizer only yields single words.
func (v *CrossReferenceValidator) checkTerms(file *domain.DocumentationFile, index *domain.TermIndex, multiWord []string, cfg domain.Config) ([]domain.CrossReference, []domain.ValidationResult) {
	var refs []domain.CrossReference
	var findings []domain.ValidationResult

	definitionLines := make(map[int]string, len(file.Definitions))
	for _, def := range file.Definitions {
		definitionLines[def.Line] = def.Term
		refs = append(refs, domain.CrossReference{
			Term:       def.Term,
			SourceFile: file.Path,
			Line:       def.Line,
			Context:    strings.TrimSpace(def.Definition),
			Kind:       domain.KindDefinition,
			Valid:      true,
		})
	}

	// One undefined-term finding per (file, term): repeating the same
	// notice on every occurrence drowns the report.
	reported := make(map[string]bool)

	for i, line := range file.Lines() {
		lineNo := i + 1
		if _, isDef := definitionLines[lineNo]; isDef {
			continue
		}

		scanLine := linkTargetPattern.ReplaceAllString(line, "]()")
		for _, token := range tokenPattern.FindAllString(scanLine, -1) {
			if len(token) < cfg.MinTermLength {
				continue
			}

			if canonical, ok := resolveToken(index, token); ok {
				refs = append(refs, domain.CrossReference{
					Term:       canonical,
					SourceFile: file.Path,
					Line:       lineNo,
					Context:    strings.TrimSpace(line),
					Kind:       domain.KindTermUsage,
					Valid:      true,
				})
				continue
			}

			if !upperTokenPattern.MatchString(token) || cfg.Stopped(token) || reported[token] {
				continue
			}
			reported[token] = true
			refs = append(refs, domain.CrossReference{
				Term:       token,
				SourceFile: file.Path,
				Line:       lineNo,
				Context:    strings.TrimSpace(line),
				Kind:       domain.KindTermUsage,
				Valid:      false,
			})
			findings = append(findings, domain.NewInfo(file.Path, domain.RuleTerminology,
				fmt.Sprintf("Term '%s' used but not defined in terminology", token)).
				AtLine(lineNo).
				WithSuggestion(fmt.Sprintf("Add a definition for %s to the terminology file", token)))
		}

		for _, name := range multiWord {
			entry, ok := index.Resolve(name)
			if !ok {
				continue
			}
			for n := countWholeWord(scanLine, name); n > 0; n-- {
				refs = append(refs, domain.CrossReference{
					Term:       entry.Term,
					SourceFile: file.Path,
					Line:       lineNo,
					Context:    strings.TrimSpace(line),
					Kind:       domain.KindTermUsage,
					Valid:      true,
				})
			}
		}

		refs = append(refs, v.checkCommands(file, index, line, lineNo, reported, &findings)...)
	}

	return refs, findings
}

// checkCommands resolves backticked `me ...` command references on one
// line. Terminology files define commands and are not re-checked.
func (v *CrossReferenceValidator) checkCommands(file *domain.DocumentationFile, index *domain.TermIndex, line string, lineNo int, reported map[string]bool, findings *[]domain.ValidationResult) []domain.CrossReference {
	if file.Role == domain.RoleTerminology {
		return nil
	}

	var refs []domain.CrossReference
	for _, m := range cliCommandPattern.FindAllStringSubmatch(line, -1) {
		cmd := strings.TrimSpace(m[1])
		ref := domain.CrossReference{
			Term:       cmd,
			SourceFile: file.Path,
			Line:       lineNo,
			Context:    strings.TrimSpace(line),
			Kind:       domain.KindTermUsage,
			Valid:      index.Has(cmd),
		}
		if !ref.Valid && !reported[cmd] {
			reported[cmd] = true
			*findings = append(*findings, domain.NewInfo(file.Path, domain.RuleTerminology,
				fmt.Sprintf("CLI command '%s' referenced but not documented", cmd)).
				AtLine(lineNo).
				WithSuggestion("Document the command in the terminology file"))
		}
		refs = append(refs, ref)
	}
	return refs
}

// resolveToken resolves a token against the index, trying the exact form
// first and then the marker-ID prefix form ("ATO_001" resolves via the
// "ATO_" alias). It returns the canonical term.
func resolveToken(index *domain.TermIndex, token string) (string, bool) {
	if e, ok := index.Resolve(token); ok {
		return e.Term, true
	}
	if i := strings.Index(token, "_"); i > 0 {
		if e, ok := index.Resolve(token[:i+1]); ok {
			return e.Term, true
		}
	}
	return "", false
}

// multiWordNames returns defined names containing whitespace; the token
// scan cannot see them. CLI commands are excluded: command mentions are
// matched by the backtick scan.
func multiWordNames(index *domain.TermIndex) []string {
	var names []string
	for _, name := range index.Names() {
		if !strings.Contains(name, " ") {
			continue
		}
		if e, ok := index.Resolve(name); ok && e.Category == domain.CategoryCLICommand {
			continue
		}
		names = append(names, name)
	}
	return names
}

// countWholeWord counts case-sensitive occurrences of name in line that
// are bounded by non-word characters on both sides.
func countWholeWord(line, name string) int {
	count := 0
	for start := 0; ; {
		i := strings.Index(line[start:], name)
		if i < 0 {
			return count
		}
		i += start
		if boundaryBefore(line, i) && boundaryAfter(line, i+len(name)) {
			count++
		}
		start = i + len(name)
	}
}

func boundaryBefore(line string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(line[:i])
	return !isWordChar(r)
}

func boundaryAfter(line string, i int) bool {
	if i >= len(line) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(line[i:])
	return !isWordChar(r)
}

// isWordChar mirrors the token pattern's character class.
func isWordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-':
		return true
	}
	return strings.ContainsRune("ÄÖÜäöüß", r)
}

// lineContext returns the trimmed text of a 1-based line.
func lineContext(lines []string, lineNo int) string {
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[lineNo-1])
}
