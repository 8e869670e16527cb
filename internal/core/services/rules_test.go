package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transrapport/doclint/internal/core/domain"
)

func longContent(title string) string {
	return "# " + title + "\n\n" + strings.Repeat("Enough prose to clear the completeness floor. ", 5)
}

func TestContentRules_MissingTitle(t *testing.T) {
	rules := NewContentRules()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Content: strings.Repeat("Prose without any heading at all. ", 10),
	}

	findings := rules.Check([]domain.DocumentationFile{file}, domain.NewTermIndex(), configWithoutRequiredTerms())

	structure := findByRule(findings, domain.RuleMarkdownStructure)
	require.Len(t, structure, 1)
	assert.Equal(t, domain.SeverityWarning, structure[0].Severity)
	assert.Contains(t, structure[0].Message, "main title")
	require.NotNil(t, structure[0].Line)
	assert.Equal(t, 1, *structure[0].Line)
}

func TestContentRules_ShortContent(t *testing.T) {
	rules := NewContentRules()

	file := domain.DocumentationFile{
		Path:    "/docs/STUB.md",
		Name:    "stub",
		Title:   "Stub",
		Content: "# Stub\n\nTiny.\n",
	}

	findings := rules.Check([]domain.DocumentationFile{file}, domain.NewTermIndex(), configWithoutRequiredTerms())

	complete := findByRule(findings, domain.RuleContentComplete)
	require.Len(t, complete, 1)
	assert.Equal(t, domain.SeverityWarning, complete[0].Severity)
	assert.Contains(t, complete[0].Message, "too short")
	assert.Nil(t, complete[0].Line)
}

func TestContentRules_ShortContentCountsCharacters(t *testing.T) {
	rules := NewContentRules()
	cfg := configWithoutRequiredTerms()
	require.Equal(t, 100, cfg.MinContentLength)

	// 65 characters but 126 bytes; the floor must count characters.
	file := domain.DocumentationFile{
		Path:    "/docs/KURZ.md",
		Name:    "kurz",
		Title:   "Ü",
		Content: "# Ü\n\n" + strings.Repeat("ä", 60),
	}

	findings := rules.Check([]domain.DocumentationFile{file}, domain.NewTermIndex(), cfg)

	complete := findByRule(findings, domain.RuleContentComplete)
	require.Len(t, complete, 1)
	assert.Contains(t, complete[0].Message, "too short")
}

func TestContentRules_MarkerCompliance(t *testing.T) {
	rules := NewContentRules()
	cfg := configWithoutRequiredTerms()

	t.Run("marker file without the keyword", func(t *testing.T) {
		file := domain.DocumentationFile{
			Path:    "/docs/MARKER.md",
			Name:    "marker",
			Role:    domain.RoleMarker,
			Title:   "Marker Specification",
			Content: longContent("Marker Specification"),
		}
		findings := rules.Check([]domain.DocumentationFile{file}, domain.NewTermIndex(), cfg)

		compliance := findByRule(findings, domain.RuleLDCompliance)
		require.Len(t, compliance, 1)
		assert.Contains(t, compliance[0].Message, "LD-3.4")
	})

	t.Run("keyword match is case-insensitive", func(t *testing.T) {
		file := domain.DocumentationFile{
			Path:    "/docs/MARKER.md",
			Name:    "marker",
			Role:    domain.RoleMarker,
			Title:   "Marker Specification",
			Content: longContent("Marker Specification") + "\nThis document follows ld-3.4.\n",
		}
		findings := rules.Check([]domain.DocumentationFile{file}, domain.NewTermIndex(), cfg)
		assert.Empty(t, findByRule(findings, domain.RuleLDCompliance))
	})

	t.Run("non-marker files are exempt", func(t *testing.T) {
		file := domain.DocumentationFile{
			Path:    "/docs/GUIDE.md",
			Name:    "guide",
			Role:    domain.RoleOther,
			Title:   "Guide",
			Content: longContent("Guide"),
		}
		findings := rules.Check([]domain.DocumentationFile{file}, domain.NewTermIndex(), cfg)
		assert.Empty(t, findByRule(findings, domain.RuleLDCompliance))
	})
}

func TestContentRules_TerminologyCompleteness(t *testing.T) {
	rules := NewContentRules()
	cfg := domain.DefaultConfig()

	terminology := domain.DocumentationFile{
		Path:    "/docs/TERMINOLOGIE.md",
		Name:    "terminologie",
		Role:    domain.RoleTerminology,
		Title:   "Terminologie",
		Content: longContent("Terminologie"),
	}

	index := domain.NewTermIndex()
	index.Put(domain.TerminologyEntry{Term: "ATO"})
	index.Put(domain.TerminologyEntry{Term: "SEM"})

	findings := rules.Check([]domain.DocumentationFile{terminology}, index, cfg)

	complete := findByRule(findings, domain.RuleTerminologyComplete)
	require.Len(t, complete, 1)
	assert.Equal(t, "/docs/TERMINOLOGIE.md", complete[0].FilePath)
	assert.Equal(t, "Missing key marker terms: CLU, MEMA", complete[0].Message)
}

func TestContentRules_TargetedFiles(t *testing.T) {
	rules := NewContentRules()

	cfg := configWithoutRequiredTerms()
	cfg.TargetFiles = []string{"/docs/A.md"}

	files := []domain.DocumentationFile{
		{Path: "/docs/A.md", Name: "a", Content: "no title here"},
		{Path: "/docs/B.md", Name: "b", Content: "no title here either"},
	}

	findings := rules.Check(files, domain.NewTermIndex(), cfg)

	for _, f := range findings {
		assert.Equal(t, "/docs/A.md", f.FilePath)
	}
	assert.NotEmpty(t, findByRule(findings, domain.RuleMarkdownStructure))
}

func configWithoutRequiredTerms() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.RequiredTerms = nil
	return cfg
}
