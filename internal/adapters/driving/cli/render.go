package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/transrapport/doclint/internal/core/domain"
	"github.com/transrapport/doclint/internal/core/ports/driving"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// colorEnabled reports whether styled output should be used. Styling is
// limited to interactive terminals so piped output stays plain.
func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// severityLabel renders a finding marker, styled when color is on.
func severityLabel(s domain.Severity, color bool) string {
	label := s.Symbol() + " " + s.String()
	if !color {
		return label
	}
	switch s {
	case domain.SeverityError:
		return errorStyle.Render(label)
	case domain.SeverityWarning:
		return warningStyle.Render(label)
	default:
		return infoStyle.Render(label)
	}
}

// renderReport writes a validation report as text, findings grouped by
// file in sorted order.
func renderReport(cmd *cobra.Command, report *domain.Report) {
	color := colorEnabled()

	currentFile := ""
	for i := range report.Issues {
		issue := &report.Issues[i]
		if issue.FilePath != currentFile {
			currentFile = issue.FilePath
			cmd.Println()
			cmd.Println(stylize(pathStyle, displayPath(currentFile), color))
		}

		location := ""
		if issue.Line != nil {
			location = fmt.Sprintf(":%d", *issue.Line)
		}
		cmd.Printf("  %s%s [%s] %s\n", severityLabel(issue.Severity, color), location, issue.RuleName, issue.Message)
		if issue.Suggestion != "" {
			cmd.Printf("    %s\n", stylize(dimStyle, issue.Suggestion, color))
		}
	}

	cmd.Println()
	renderSummaryLine(cmd, report, color)
}

// renderSummaryLine writes the one-line outcome.
func renderSummaryLine(cmd *cobra.Command, report *domain.Report, color bool) {
	s := report.Summary
	cmd.Printf("Validated %d files: %d errors, %d warnings, %d info\n",
		report.FileCount, s.Errors, s.Warnings, s.Info)

	if report.Success {
		cmd.Println(stylize(okStyle, "OK", color))
	} else {
		cmd.Println(stylize(errorStyle, "FAILED", color))
	}
}

// renderStatus writes a status report as text.
func renderStatus(cmd *cobra.Command, report *driving.StatusReport) {
	color := colorEnabled()

	for _, f := range report.Files {
		marker := okStyle
		symbol := "✓"
		switch f.Status {
		case domain.StatusInvalid:
			marker = errorStyle
			symbol = "✗"
		case domain.StatusNotValidated:
			marker = dimStyle
			symbol = "•"
		}
		cmd.Printf("  %s %-16s %s (%d errors, %d warnings)\n",
			stylize(marker, symbol, color), f.Role, displayPath(f.Path), f.Errors, f.Warnings)
	}

	cmd.Println()
	cmd.Printf("Overall: %s\n", report.Overall)
	if !report.LastValidation.IsZero() {
		source := "fresh validation"
		if report.FromCache {
			source = "cached run"
		}
		cmd.Printf("Last validation: %s (%s)\n", report.LastValidation.Format("2006-01-02 15:04:05"), source)
	}
	cmd.Printf("Terms: %d, references: %d, broken: %d\n",
		report.Statistics.TotalTerms, report.Statistics.TotalReferences, report.Statistics.BrokenReferences)
}

// renderCrossRefs writes a cross-reference report as text.
func renderCrossRefs(cmd *cobra.Command, report *driving.CrossRefReport) {
	color := colorEnabled()

	for i := range report.References {
		ref := &report.References[i]
		marker := "✓"
		style := okStyle
		if !ref.Valid {
			marker = "✗"
			style = errorStyle
		}
		cmd.Printf("  %s %s  %s:%d (%s)\n", stylize(style, marker, color),
			ref.Term, displayPath(ref.SourceFile), ref.Line, ref.Kind)
	}

	cmd.Println()
	cmd.Printf("%d terms, %d references, %d broken\n",
		report.TermCount, len(report.References), len(report.Broken))
}

// renderJSON writes any payload as indented JSON.
func renderJSON(cmd *cobra.Command, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// stylize applies a style when color is on.
func stylize(style lipgloss.Style, s string, color bool) string {
	if !color {
		return s
	}
	return style.Render(s)
}

// displayPath shortens a path relative to the working directory when it
// is a descendant, absolute paths otherwise.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
