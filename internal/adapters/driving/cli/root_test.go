package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driving"
)

type stubValidator struct {
	report   *domain.Report
	err      error
	lastRoot string
	lastCfg  domain.Config
	calls    int
}

func (s *stubValidator) Validate(_ context.Context, root string, cfg domain.Config) (*domain.Report, error) {
	s.calls++
	s.lastRoot = root
	s.lastCfg = cfg
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type stubCrossReferencer struct {
	report     *driving.CrossRefReport
	err        error
	lastFilter driving.CrossRefFilter
}

func (s *stubCrossReferencer) CrossReferences(_ context.Context, _ string, filter driving.CrossRefFilter) (*driving.CrossRefReport, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type stubStatusReporter struct {
	report *driving.StatusReport
	err    error
}

func (s *stubStatusReporter) Status(_ context.Context, _ string) (*driving.StatusReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type testServices struct {
	validator *stubValidator
	crossRef  *stubCrossReferencer
	status    *stubStatusReporter
}

// setupTestServices wires stub services and restores a clean command
// state when the test finishes.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		validator: &stubValidator{report: passingReport()},
		crossRef:  &stubCrossReferencer{report: &driving.CrossRefReport{}},
		status:    &stubStatusReporter{report: sampleStatusReport()},
	}
	SetServices(&Services{
		Validator:       ts.validator,
		CrossReferencer: ts.crossRef,
		Status:          ts.status,
	})

	t.Cleanup(func() {
		SetServices(&Services{})
		resetFlags()
	})

	return ts
}

// resetFlags restores the package-level flag variables between tests.
func resetFlags() {
	validateStrict = false
	validateFormat = "text"
	validateFiles = nil
	validateWorkers = 0
	crossRefTerm = ""
	crossRefFile = ""
	crossRefFormat = "text"
	statusFormat = "text"
	watchStrict = false
	verboseFlag = false
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func passingReport() *domain.Report {
	return &domain.Report{
		Success:   true,
		FileCount: 4,
	}
}

func failingReport() *domain.Report {
	issues := []domain.ValidationResult{
		domain.NewError("/docs/ARCHITECTURE.md", domain.RuleCrossReference,
			"Broken link: file not found: MISSING.md").AtLine(12).
			WithSuggestion("Create the file or remove the link"),
		domain.NewWarning("/docs/MARKER.md", domain.RuleMarkdownStructure,
			"Document should start with a main title (# Title)").AtLine(1),
	}
	return &domain.Report{
		Success:   false,
		FileCount: 4,
		Issues:    issues,
		Summary:   domain.Summarise(issues),
	}
}

func sampleStatusReport() *driving.StatusReport {
	return &driving.StatusReport{
		Files: []domain.FileStatus{
			{
				Path:   "/docs/TRANSRAPPORT.md",
				Name:   "TRANSRAPPORT.md",
				Role:   domain.RoleTransrapport,
				Status: domain.StatusValid,
			},
			{
				Path:     "/docs/MARKER.md",
				Name:     "MARKER.md",
				Role:     domain.RoleMarker,
				Status:   domain.StatusInvalid,
				Errors:   2,
				Warnings: 1,
			},
		},
		Overall:        domain.StatusInvalid,
		LastValidation: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Statistics: driving.StatusStatistics{
			TotalTerms:       12,
			TotalReferences:  40,
			BrokenReferences: 1,
		},
		FromCache: true,
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "doclint", rootCmd.Use)
}

func TestRootCmd_Long(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "markdown documentation corpus")
	assert.Contains(t, rootCmd.Long, "cross-references")
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
}

func TestCorpusRoot(t *testing.T) {
	assert.Equal(t, ".", corpusRoot(nil))
	assert.Equal(t, "docs", corpusRoot([]string{"docs"}))
}

func TestBaseConfig_DefaultsWithoutStore(t *testing.T) {
	setupTestServices(t)

	cfg := baseConfig()
	assert.Equal(t, domain.DefaultConfig().MinContentLength, cfg.MinContentLength)
	assert.False(t, cfg.Strict)
}

func TestAbsolutePaths(t *testing.T) {
	paths := absolutePaths([]string{"/abs/DOC.md", "rel/DOC.md"})

	assert.Len(t, paths, 2)
	assert.Equal(t, "/abs/DOC.md", paths[0])
	assert.True(t, paths[1] != "rel/DOC.md", "relative path should be resolved")
}
