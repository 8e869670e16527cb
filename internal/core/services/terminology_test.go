package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transrapport/doclint/internal/core/domain"
)

func terminologyFile(path string, defs ...domain.TermDefinition) domain.DocumentationFile {
	return domain.DocumentationFile{
		Path:        path,
		Name:        "terminologie",
		Role:        domain.RoleTerminology,
		Definitions: defs,
	}
}

func TestTerminologyExtractor_MarkerTerms(t *testing.T) {
	extractor := NewTerminologyExtractor()

	file := terminologyFile("/docs/TERMINOLOGIE.md",
		domain.TermDefinition{Term: "ATO", Definition: "Atomic marker", Line: 3},
		domain.TermDefinition{Term: "SEM", Definition: "Semantic marker", Line: 4},
	)

	index, findings := extractor.Extract([]domain.DocumentationFile{file})

	assert.Empty(t, findings)
	assert.Equal(t, 2, index.Len())

	entry, ok := index.Resolve("ATO")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryMarkerLevel, entry.Category)
	assert.Equal(t, "/docs/TERMINOLOGIE.md", entry.SourceFile)
	assert.Equal(t, 3, entry.Line)

	// Marker terms gain the underscore prefix alias used in marker IDs.
	aliased, ok := index.Resolve("ATO_")
	require.True(t, ok)
	assert.Equal(t, "ATO", aliased.Term)
}

func TestTerminologyExtractor_AkaAliases(t *testing.T) {
	extractor := NewTerminologyExtractor()

	file := terminologyFile("/docs/TERMINOLOGIE.md",
		domain.TermDefinition{
			Term:       "MEMA",
			Definition: "Memory marker",
			Aliases:    []string{"Memory Marker"},
			Line:       7,
		},
	)

	index, _ := extractor.Extract([]domain.DocumentationFile{file})

	entry, ok := index.Resolve("Memory Marker")
	require.True(t, ok)
	assert.Equal(t, "MEMA", entry.Term)
}

func TestTerminologyExtractor_Redefinition(t *testing.T) {
	extractor := NewTerminologyExtractor()

	first := terminologyFile("/docs/TERMINOLOGIE.md",
		domain.TermDefinition{Term: "CLU", Definition: "Cluster marker", Line: 2},
	)
	second := terminologyFile("/docs/TERMINOLOGY.md",
		domain.TermDefinition{Term: "CLU", Definition: "Clustered marker level", Line: 9},
	)

	index, findings := extractor.Extract([]domain.DocumentationFile{first, second})

	// Later definition wins; the overwrite is reported as info.
	entry, ok := index.Resolve("CLU")
	require.True(t, ok)
	assert.Equal(t, "Clustered marker level", entry.Definition)

	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityInfo, findings[0].Severity)
	assert.Equal(t, domain.RuleTerminology, findings[0].RuleName)
	assert.Contains(t, findings[0].Message, "redefinition of CLU")
	assert.Contains(t, findings[0].Suggestion, "/docs/TERMINOLOGIE.md")
}

func TestTerminologyExtractor_IdenticalRedefinitionIsSilent(t *testing.T) {
	extractor := NewTerminologyExtractor()

	file := terminologyFile("/docs/TERMINOLOGIE.md",
		domain.TermDefinition{Term: "SEM", Definition: "Semantic marker", Line: 2},
		domain.TermDefinition{Term: "SEM", Definition: "Semantic marker", Line: 14},
	)

	_, findings := extractor.Extract([]domain.DocumentationFile{file})
	assert.Empty(t, findings)
}

func TestTerminologyExtractor_CLICommands(t *testing.T) {
	extractor := NewTerminologyExtractor()

	file := domain.DocumentationFile{
		Path: "/docs/TERMINOLOGIE.md",
		Name: "terminologie",
		Role: domain.RoleTerminology,
		Content: "# Terminologie\n" +
			"\n" +
			"### me transcribe\n" +
			"\n" +
			"Runs the transcription stage over a recorded session.\n" +
			"\n" +
			"Use `me status` to inspect the pipeline.\n",
		Headings: []domain.Heading{
			{Level: 1, Text: "Terminologie", Line: 1},
			{Level: 3, Text: "me transcribe", Line: 3},
		},
	}

	index, _ := extractor.Extract([]domain.DocumentationFile{file})

	t.Run("heading command takes its definition from the prose", func(t *testing.T) {
		entry, ok := index.Resolve("me transcribe")
		require.True(t, ok)
		assert.Equal(t, domain.CategoryCLICommand, entry.Category)
		assert.Equal(t, "Runs the transcription stage over a recorded session.", entry.Definition)
	})

	t.Run("backticked command gets a stock definition", func(t *testing.T) {
		entry, ok := index.Resolve("me status")
		require.True(t, ok)
		assert.Equal(t, "CLI command: me status", entry.Definition)
	})
}

func TestTerminologyExtractor_FallbackWithoutTerminologyFile(t *testing.T) {
	extractor := NewTerminologyExtractor()

	file := domain.DocumentationFile{
		Path: "/docs/NOTES.md",
		Name: "notes",
		Role: domain.RoleOther,
		Definitions: []domain.TermDefinition{
			{Term: "Prosody", Definition: "Rhythm and intonation features", Line: 5},
		},
	}

	index, _ := extractor.Extract([]domain.DocumentationFile{file})
	assert.True(t, index.Has("Prosody"))
}
