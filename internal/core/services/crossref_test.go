package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transrapport/doclint/internal/core/domain"
)

func markerIndex() *domain.TermIndex {
	index := domain.NewTermIndex()
	index.Put(domain.TerminologyEntry{
		Term: "ATO", Definition: "Atomic marker",
		Aliases: []string{"ATO_"}, Category: domain.CategoryMarkerLevel,
	})
	index.Put(domain.TerminologyEntry{
		Term: "SEM", Definition: "Semantic marker",
		Aliases: []string{"SEM_"}, Category: domain.CategoryMarkerLevel,
	})
	index.Put(domain.TerminologyEntry{
		Term: "me transcribe", Definition: "CLI command: me transcribe",
		Category: domain.CategoryCLICommand,
	})
	return index
}

func findByRule(findings []domain.ValidationResult, rule string) []domain.ValidationResult {
	var out []domain.ValidationResult
	for _, f := range findings {
		if f.RuleName == rule {
			out = append(out, f)
		}
	}
	return out
}

func TestCrossReferenceValidator_BrokenFileLink(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\nSee [missing](MISSING.md) for details.\n",
		Links: []domain.Link{
			{Text: "missing", Target: "MISSING.md", File: "MISSING.md", Line: 3},
		},
	}

	refs, findings, _ := validator.Validate([]domain.DocumentationFile{file}, domain.NewTermIndex(), domain.DefaultConfig())

	broken := findByRule(findings, domain.RuleCrossReference)
	require.Len(t, broken, 1)
	assert.Equal(t, domain.SeverityError, broken[0].Severity)
	assert.Contains(t, broken[0].Message, "MISSING.md")
	require.NotNil(t, broken[0].Line)
	assert.Equal(t, 3, *broken[0].Line)

	require.Len(t, refs, 1)
	assert.False(t, refs[0].Valid)
	assert.Equal(t, domain.KindLink, refs[0].Kind)
}

func TestCrossReferenceValidator_BrokenAnchorIsWarning(t *testing.T) {
	validator := NewCrossReferenceValidator()

	target := domain.DocumentationFile{
		Path:    "/docs/ARCHITECTURE.md",
		Name:    "architecture",
		Role:    domain.RoleArchitecture,
		Content: "# Architecture\n\n## Pipeline Stages\n",
		Headings: []domain.Heading{
			{Level: 1, Text: "Architecture", Line: 1},
			{Level: 2, Text: "Pipeline Stages", Line: 3},
		},
	}
	source := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\n[stages](ARCHITECTURE.md#pipeline-stages)\n[nope](ARCHITECTURE.md#no-such-section)\n",
		Links: []domain.Link{
			{Text: "stages", Target: "ARCHITECTURE.md#pipeline-stages", File: "ARCHITECTURE.md", Anchor: "pipeline-stages", Line: 3},
			{Text: "nope", Target: "ARCHITECTURE.md#no-such-section", File: "ARCHITECTURE.md", Anchor: "no-such-section", Line: 4},
		},
	}

	_, findings, graph := validator.Validate([]domain.DocumentationFile{target, source}, domain.NewTermIndex(), domain.DefaultConfig())

	refFindings := findByRule(findings, domain.RuleCrossReference)
	require.Len(t, refFindings, 1)
	assert.Equal(t, domain.SeverityWarning, refFindings[0].Severity)
	assert.Contains(t, refFindings[0].Message, "no-such-section")

	// The file resolved either way, so both links contribute the edge.
	assert.Equal(t, []string{"/docs/ARCHITECTURE.md"}, graph.Edges("/docs/GUIDE.md"))
}

func TestCrossReferenceValidator_SameFileAnchor(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\n[up](#guide)\n[gone](#nowhere)\n",
		Headings: []domain.Heading{
			{Level: 1, Text: "Guide", Line: 1},
		},
		Links: []domain.Link{
			{Text: "up", Target: "#guide", Anchor: "guide", Line: 3},
			{Text: "gone", Target: "#nowhere", Anchor: "nowhere", Line: 4},
		},
	}

	_, findings, _ := validator.Validate([]domain.DocumentationFile{file}, domain.NewTermIndex(), domain.DefaultConfig())

	refFindings := findByRule(findings, domain.RuleCrossReference)
	require.Len(t, refFindings, 1)
	assert.Equal(t, domain.SeverityWarning, refFindings[0].Severity)
	assert.Contains(t, refFindings[0].Message, "#nowhere")
}

func TestCrossReferenceValidator_ExternalLinksSkipped(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Content: "# Guide\n\n[site](https://example.com/page)\n",
		Links: []domain.Link{
			{Text: "site", Target: "https://example.com/page", External: true, Line: 3},
		},
	}

	refs, findings, _ := validator.Validate([]domain.DocumentationFile{file}, domain.NewTermIndex(), domain.DefaultConfig())
	assert.Empty(t, refs)
	assert.Empty(t, findByRule(findings, domain.RuleCrossReference))
}

func TestCrossReferenceValidator_TermUsage(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\nThe ATO layer feeds SEM aggregation.\nMarker ATO_014 fires first.\n",
	}

	refs, findings, _ := validator.Validate([]domain.DocumentationFile{file}, markerIndex(), domain.DefaultConfig())

	var usages []domain.CrossReference
	for _, ref := range refs {
		if ref.Kind == domain.KindTermUsage && ref.Valid {
			usages = append(usages, ref)
		}
	}
	require.Len(t, usages, 3)

	// Marker IDs resolve to the canonical term through the prefix alias.
	assert.Equal(t, "ATO", usages[0].Term)
	assert.Equal(t, "SEM", usages[1].Term)
	assert.Equal(t, "ATO", usages[2].Term)
	assert.Equal(t, 4, usages[2].Line)

	assert.Empty(t, findByRule(findings, domain.RuleTerminology))
}

func TestCrossReferenceValidator_MultiWordAliasUsage(t *testing.T) {
	validator := NewCrossReferenceValidator()

	index := markerIndex()
	index.Put(domain.TerminologyEntry{
		Term: "MEMA", Definition: "Memory marker",
		Aliases: []string{"MEMA_", "Memory Marker"}, Category: domain.CategoryMarkerLevel,
	})

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\nThe Memory Marker layer aggregates clusters.\nMEMA output follows.\nMemory Markers is a different word.\n",
	}

	refs, findings, _ := validator.Validate([]domain.DocumentationFile{file}, index, domain.DefaultConfig())

	var usages []domain.CrossReference
	for _, ref := range refs {
		if ref.Kind == domain.KindTermUsage && ref.Valid {
			usages = append(usages, ref)
		}
	}

	// The alias resolves to the same entry as the canonical term; the
	// trailing-s form on line 5 is a different word and does not match.
	require.Len(t, usages, 2)
	assert.Equal(t, "MEMA", usages[0].Term)
	assert.Equal(t, 3, usages[0].Line)
	assert.Equal(t, "MEMA", usages[1].Term)
	assert.Equal(t, 4, usages[1].Line)

	assert.Empty(t, findByRule(findings, domain.RuleTerminology))
}

func TestCrossReferenceValidator_UndefinedTerm(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\nThe XYZ stage runs before XYZ aggregation.\nThe JSON output follows.\n",
	}

	refs, findings, _ := validator.Validate([]domain.DocumentationFile{file}, markerIndex(), domain.DefaultConfig())

	t.Run("undefined term reported once per file", func(t *testing.T) {
		infos := findByRule(findings, domain.RuleTerminology)
		require.Len(t, infos, 1)
		assert.Equal(t, domain.SeverityInfo, infos[0].Severity)
		assert.Contains(t, infos[0].Message, "'XYZ'")
	})

	t.Run("stoplisted tokens are ignored", func(t *testing.T) {
		for _, f := range findings {
			assert.NotContains(t, f.Message, "JSON")
		}
	})

	t.Run("invalid reference recorded", func(t *testing.T) {
		var invalid []domain.CrossReference
		for _, ref := range refs {
			if !ref.Valid {
				invalid = append(invalid, ref)
			}
		}
		require.Len(t, invalid, 1)
		assert.Equal(t, "XYZ", invalid[0].Term)
	})
}

func TestCrossReferenceValidator_DefinitionLinesExcluded(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/TERMINOLOGIE.md",
		Name:    "terminologie",
		Role:    domain.RoleTerminology,
		Content: "# Terminologie\n\n**ATO** · Atomic marker\n",
		Definitions: []domain.TermDefinition{
			{Term: "ATO", Definition: "Atomic marker", Line: 3},
		},
	}

	refs, _, _ := validator.Validate([]domain.DocumentationFile{file}, markerIndex(), domain.DefaultConfig())

	require.Len(t, refs, 1)
	assert.Equal(t, domain.KindDefinition, refs[0].Kind)
	assert.Equal(t, "ATO", refs[0].Term)
}

func TestCrossReferenceValidator_UndocumentedCommand(t *testing.T) {
	validator := NewCrossReferenceValidator()

	file := domain.DocumentationFile{
		Path:    "/docs/GUIDE.md",
		Name:    "guide",
		Role:    domain.RoleOther,
		Content: "# Guide\n\nRun `me transcribe` then `me export pdf`.\n",
	}

	_, findings, _ := validator.Validate([]domain.DocumentationFile{file}, markerIndex(), domain.DefaultConfig())

	infos := findByRule(findings, domain.RuleTerminology)
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].Message, "me export pdf")
}

func TestCrossReferenceValidator_Orphans(t *testing.T) {
	validator := NewCrossReferenceValidator()

	hub := domain.DocumentationFile{
		Path:    "/docs/INDEX.md",
		Name:    "index",
		Content: "# Index\n\n[guide](GUIDE.md)\n",
		Links: []domain.Link{
			{Text: "guide", Target: "GUIDE.md", File: "GUIDE.md", Line: 3},
		},
	}
	linked := domain.DocumentationFile{
		Path: "/docs/GUIDE.md", Name: "guide", Content: "# Guide\n",
	}
	orphan := domain.DocumentationFile{
		Path: "/docs/LONELY.md", Name: "lonely", Content: "# Lonely\n",
	}

	_, findings, _ := validator.Validate([]domain.DocumentationFile{hub, linked, orphan}, domain.NewTermIndex(), domain.DefaultConfig())

	orphanFindings := findByRule(findings, domain.RuleOrphanFile)
	require.Len(t, orphanFindings, 1)
	assert.Equal(t, domain.SeverityInfo, orphanFindings[0].Severity)
	assert.Equal(t, "/docs/LONELY.md", orphanFindings[0].FilePath)
}
