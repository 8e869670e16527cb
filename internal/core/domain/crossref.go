package domain

// ReferenceKind distinguishes the kinds of observed cross-references.
type ReferenceKind string

const (
	// KindLink is an inline markdown link to another corpus file.
	KindLink ReferenceKind = "link"

	// KindTermUsage is a whole-word occurrence of a defined (or
	// suspected) term outside its definition line.
	KindTermUsage ReferenceKind = "term_usage"

	// KindDefinition is the definition line of a term.
	KindDefinition ReferenceKind = "definition"
)

// CrossReference is one observed link or term usage. Records are created
// during cross-reference validation, read-only afterwards, and rebuilt
// on every run.
type CrossReference struct {
	// Term is the referenced term, or the link target for links.
	Term string

	// SourceFile is the path of the file containing the reference.
	SourceFile string

	// Line is the 1-based line number.
	Line int

	// Context is the surrounding line, trimmed.
	Context string

	// Kind is the reference kind.
	Kind ReferenceKind

	// Valid reports whether the reference resolved.
	Valid bool
}

// ContextPreview returns the context truncated to max runes.
func (r *CrossReference) ContextPreview(max int) string {
	runes := []rune(r.Context)
	if len(runes) <= max {
		return r.Context
	}
	return string(runes[:max]) + "..."
}
