package domain

import "time"

// ValidationStatus is the last-known validation state of a file.
type ValidationStatus string

const (
	// StatusNotValidated means the file has not been through a validation run.
	StatusNotValidated ValidationStatus = "not_validated"

	// StatusValid means the last run produced no errors for the file.
	StatusValid ValidationStatus = "valid"

	// StatusInvalid means the last run produced at least one error.
	StatusInvalid ValidationStatus = "invalid"
)

// FileRole identifies one of the core TransRapport documentation files.
// Files outside the core set have RoleOther.
type FileRole string

const (
	RoleTransrapport FileRole = "transrapport"
	RoleArchitecture FileRole = "architecture"
	RoleTerminology  FileRole = "terminologie"
	RoleMarker       FileRole = "marker"
	RoleOther        FileRole = "other"
)

// Heading is one markdown heading extracted from a file.
type Heading struct {
	// Level is the heading depth, 1 through 6.
	Level int

	// Text is the heading text without the leading hashes.
	Text string

	// Line is the 1-based line number.
	Line int
}

// Link is one inline markdown link extracted from a file.
type Link struct {
	// Text is the bracketed link text.
	Text string

	// Target is the raw link target as written.
	Target string

	// File is the file part of the target, empty for pure-anchor links.
	File string

	// Anchor is the fragment after '#', without the '#'.
	Anchor string

	// Line is the 1-based line number.
	Line int

	// External marks http(s)/mailto targets, which are never resolved.
	External bool
}

// TermDefinition is one bold-term definition line as written in a file.
// The terminology extractor turns these into TerminologyEntry values.
type TermDefinition struct {
	// Term is the canonical term between the ** markers.
	Term string

	// Definition is the text after the separator.
	Definition string

	// Aliases lists names declared via an "(aka X, Y)" clause.
	Aliases []string

	// Line is the 1-based line number.
	Line int
}

// DocumentationFile represents one parsed source file within a corpus.
type DocumentationFile struct {
	// Path is the absolute path. Unique within a corpus.
	Path string

	// Name is the short identifier: the lowercased base name without
	// extension.
	Name string

	// Role classifies the file within the core documentation set.
	Role FileRole

	// Title is the text of the first level-1 heading, if any.
	Title string

	// Fingerprint is the hex SHA-256 of the file content, used for
	// change detection.
	Fingerprint string

	// SizeBytes is the content length in bytes.
	SizeBytes int64

	// Content is the decoded file content.
	Content string

	// Headings are the extracted headings, in document order.
	Headings []Heading

	// Links are the extracted inline links, in document order.
	Links []Link

	// Definitions are the extracted bold-term definition lines, in
	// document order.
	Definitions []TermDefinition

	// Status is the last-known validation status.
	Status ValidationStatus

	// LastValidated is when the file last went through a run.
	LastValidated time.Time
}

// Lines splits the content into lines without allocating per call sites.
// Callers index lines 0-based; reported line numbers are 1-based.
func (f *DocumentationFile) Lines() []string {
	return splitLines(f.Content)
}

// HasAnchor reports whether the file has a heading whose slug matches.
func (f *DocumentationFile) HasAnchor(anchor string) bool {
	for _, h := range f.Headings {
		if HeadingSlug(h.Text) == anchor {
			return true
		}
	}
	return false
}

// DetectRole classifies a file name into one of the core roles by
// substring, matching the conventions of the TransRapport corpus.
func DetectRole(name string) FileRole {
	switch {
	case contains(name, "transrapport"):
		return RoleTransrapport
	case contains(name, "architecture"):
		return RoleArchitecture
	case contains(name, "terminologie"), contains(name, "terminology"):
		return RoleTerminology
	case contains(name, "marker"):
		return RoleMarker
	default:
		return RoleOther
	}
}
