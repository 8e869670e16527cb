package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driving"
)

// ValidateInput is the input schema for the validate_docs tool.
type ValidateInput struct {
	Path   string `json:"path" jsonschema:"path to the documentation corpus (directory or single markdown file)"`
	Strict bool   `json:"strict,omitempty" jsonschema:"treat structural warnings as errors"`
}

// ValidateOutput is the output schema for the validate_docs tool.
type ValidateOutput struct {
	Success   bool          `json:"success"`
	FileCount int           `json:"file_count"`
	Issues    []IssueOutput `json:"issues"`
	Errors    int           `json:"errors"`
	Warnings  int           `json:"warnings"`
	Info      int           `json:"info"`
}

// IssueOutput represents a single validation finding.
type IssueOutput struct {
	FilePath   string `json:"file_path"`
	Rule       string `json:"rule_name"`
	Severity   string `json:"severity"`
	Line       *int   `json:"line_number,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CrossRefInput is the input schema for the cross_references tool.
type CrossRefInput struct {
	Path string `json:"path" jsonschema:"path to the documentation corpus"`
	Term string `json:"term,omitempty" jsonschema:"only return references whose term contains this value"`
	File string `json:"file,omitempty" jsonschema:"only return references observed in this file"`
}

// CrossRefOutput is the output schema for the cross_references tool.
type CrossRefOutput struct {
	TermCount  int               `json:"term_count"`
	References []ReferenceOutput `json:"references"`
	Broken     []ReferenceOutput `json:"broken_links"`
}

// ReferenceOutput represents a single observed cross-reference.
type ReferenceOutput struct {
	Term    string `json:"term"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Valid   bool   `json:"valid"`
	Context string `json:"context,omitempty"`
}

// StatusInput is the input schema for the doc_status tool.
type StatusInput struct {
	Path string `json:"path" jsonschema:"path to the documentation corpus"`
}

// StatusOutput is the output schema for the doc_status tool.
type StatusOutput struct {
	Overall          string             `json:"overall_status"`
	Files            []FileStatusOutput `json:"files"`
	LastValidation   time.Time          `json:"last_validation"`
	TotalTerms       int                `json:"total_terms"`
	TotalReferences  int                `json:"total_references"`
	BrokenReferences int                `json:"broken_references"`
}

// FileStatusOutput represents one file's validation status.
type FileStatusOutput struct {
	Path     string `json:"path"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_docs",
		Description: "Validate a markdown documentation corpus: structure, terminology, cross-references",
	}, s.handleValidate)

	if s.ports.CrossReferencer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "cross_references",
			Description: "Report term usages and document links across the corpus",
		}, s.handleCrossRef)
	}

	if s.ports.Status != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "doc_status",
			Description: "Report the last-known validation status per documentation file",
		}, s.handleStatus)
	}
}

// handleValidate handles the validate_docs tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	cfg := domain.DefaultConfig()
	cfg.Strict = input.Strict

	report, err := s.ports.Validator.Validate(ctx, input.Path, cfg)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	output := ValidateOutput{
		Success:   report.Success,
		FileCount: report.FileCount,
		Issues:    make([]IssueOutput, len(report.Issues)),
		Errors:    report.Summary.Errors,
		Warnings:  report.Summary.Warnings,
		Info:      report.Summary.Info,
	}

	for i := range report.Issues {
		output.Issues[i] = IssueOutput{
			FilePath:   report.Issues[i].FilePath,
			Rule:       report.Issues[i].RuleName,
			Severity:   string(report.Issues[i].Severity),
			Line:       report.Issues[i].Line,
			Message:    report.Issues[i].Message,
			Suggestion: report.Issues[i].Suggestion,
		}
	}

	return nil, output, nil
}

// handleCrossRef handles the cross_references tool invocation.
func (s *Server) handleCrossRef(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CrossRefInput,
) (*mcp.CallToolResult, CrossRefOutput, error) {
	filter := driving.CrossRefFilter{Term: input.Term, File: input.File}

	report, err := s.ports.CrossReferencer.CrossReferences(ctx, input.Path, filter)
	if err != nil {
		return nil, CrossRefOutput{}, err
	}

	output := CrossRefOutput{
		TermCount:  report.TermCount,
		References: toReferenceOutputs(report.References),
		Broken:     toReferenceOutputs(report.Broken),
	}

	return nil, output, nil
}

// handleStatus handles the doc_status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	report, err := s.ports.Status.Status(ctx, input.Path)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	output := StatusOutput{
		Overall:          string(report.Overall),
		Files:            make([]FileStatusOutput, len(report.Files)),
		LastValidation:   report.LastValidation,
		TotalTerms:       report.Statistics.TotalTerms,
		TotalReferences:  report.Statistics.TotalReferences,
		BrokenReferences: report.Statistics.BrokenReferences,
	}

	for i := range report.Files {
		output.Files[i] = FileStatusOutput{
			Path:     report.Files[i].Path,
			Role:     string(report.Files[i].Role),
			Status:   string(report.Files[i].Status),
			Errors:   report.Files[i].Errors,
			Warnings: report.Files[i].Warnings,
		}
	}

	return nil, output, nil
}

// toReferenceOutputs converts domain references to the wire shape.
func toReferenceOutputs(refs []domain.CrossReference) []ReferenceOutput {
	out := make([]ReferenceOutput, len(refs))
	for i := range refs {
		out[i] = ReferenceOutput{
			Term:    refs[i].Term,
			File:    refs[i].SourceFile,
			Line:    refs[i].Line,
			Kind:    string(refs[i].Kind),
			Valid:   refs[i].Valid,
			Context: refs[i].ContextPreview(120),
		}
	}
	return out
}
