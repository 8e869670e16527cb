// Package markdown parses documentation files line by line, extracting
// headings, inline links, and bold-term definitions. It covers only the
// markdown subset the validator needs; a full CommonMark parser is
// deliberately out of scope.
package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

var (
	headingPattern    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	definitionPattern = regexp.MustCompile(`^\*\*([^*]+)\*\*\s*[·\-:]\s*(.+)$`)
	akaPattern        = regexp.MustCompile(`\(aka\s+([^)]+)\)`)
	parenAliasPattern = regexp.MustCompile(`\(([^)]+)\)`)
)

// Parser is the line-oriented markdown parser.
type Parser struct{}

// New creates a new markdown parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads and parses the file at path. Unreadable files return an
// error; invalid UTF-8 is replaced and reported as an info finding, and
// unbalanced link syntax as a warning finding.
func (p *Parser) Parse(_ context.Context, path string) (*driven.ParseResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var findings []domain.ValidationResult

	content := string(raw)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, string(utf8.RuneError))
		findings = append(findings, domain.NewInfo(path, domain.RuleEncoding,
			"File contains invalid UTF-8 sequences; invalid bytes were replaced").
			WithSuggestion("Re-save the file as UTF-8"))
	}

	name := fileName(path)
	file := domain.DocumentationFile{
		Path:        path,
		Name:        name,
		Role:        domain.DetectRole(name),
		Fingerprint: fingerprint(content),
		SizeBytes:   int64(len(raw)),
		Content:     content,
		Status:      domain.StatusNotValidated,
	}

	findings = append(findings, p.extract(&file)...)

	return &driven.ParseResult{File: file, Findings: findings}, nil
}

// extract walks the content once, filling headings, links, and
// definitions and collecting syntax findings.
func (p *Parser) extract(file *domain.DocumentationFile) []domain.ValidationResult {
	var findings []domain.ValidationResult

	for i, line := range file.Lines() {
		lineNum := i + 1

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			h := domain.Heading{
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
				Line:  lineNum,
			}
			file.Headings = append(file.Headings, h)
			if h.Level == 1 && file.Title == "" {
				file.Title = h.Text
			}
			continue
		}

		if m := definitionPattern.FindStringSubmatch(line); m != nil {
			file.Definitions = append(file.Definitions, parseDefinition(m[1], m[2], lineNum))
			// Definition lines may still carry links.
		}

		for _, lm := range linkPattern.FindAllStringSubmatch(line, -1) {
			file.Links = append(file.Links, parseLink(lm[1], lm[2], lineNum))
		}

		if unbalancedLink(line) {
			findings = append(findings, domain.NewWarning(file.Path, domain.RuleMarkdownSyntax,
				"Unbalanced markdown link syntax").
				AtLine(lineNum).
				WithSuggestion("Check that all markdown links are properly closed"))
		}
	}

	return findings
}

// parseLink splits a link target into file part and anchor.
func parseLink(text, target string, line int) domain.Link {
	link := domain.Link{
		Text:   strings.TrimSpace(text),
		Target: target,
		Line:   line,
	}

	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "mailto:") {
		link.External = true
		return link
	}

	if idx := strings.Index(target, "#"); idx >= 0 {
		link.File = target[:idx]
		link.Anchor = target[idx+1:]
	} else {
		link.File = target
	}

	return link
}

// parseDefinition builds a TermDefinition from a bold-term line.
// Aliases come from a parenthetical in the term ("**ATO (Atomic
// Marker)**") or an "(aka X, Y)" clause in the definition text.
func parseDefinition(term, definition string, line int) domain.TermDefinition {
	def := domain.TermDefinition{Line: line}

	term = strings.TrimSpace(term)
	if m := parenAliasPattern.FindStringSubmatch(term); m != nil {
		def.Aliases = append(def.Aliases, strings.TrimSpace(m[1]))
		term = strings.TrimSpace(parenAliasPattern.ReplaceAllString(term, ""))
	}
	def.Term = term

	definition = strings.TrimSpace(definition)
	if m := akaPattern.FindStringSubmatch(definition); m != nil {
		for _, alias := range strings.Split(m[1], ",") {
			if alias = strings.TrimSpace(alias); alias != "" {
				def.Aliases = append(def.Aliases, alias)
			}
		}
		definition = strings.TrimSpace(akaPattern.ReplaceAllString(definition, ""))
	}
	def.Definition = definition

	return def
}

// unbalancedLink reports whether a line opens more links than it closes.
func unbalancedLink(line string) bool {
	opens := strings.Count(line, "](")
	if opens == 0 {
		return false
	}
	return opens > strings.Count(line, ")")
}

// fingerprint is the hex SHA-256 of the content, used for change
// detection between runs.
func fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// fileName is the lowercased base name without extension.
func fileName(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
