package domain

import (
	"sort"
	"strings"
)

// TermCategory groups terminology entries by what they name.
type TermCategory string

const (
	// CategoryMarkerLevel is one of the LD-3.4 marker levels
	// (ATO, SEM, CLU, MEMA).
	CategoryMarkerLevel TermCategory = "marker_level"

	// CategoryCLICommand is a documented `me ...` CLI command.
	CategoryCLICommand TermCategory = "cli_command"

	// CategoryGeneral is any other defined term.
	CategoryGeneral TermCategory = "general"
)

// TerminologyEntry is one defined term. Canonical terms are unique within
// an index; entries are immutable for the duration of a validation run.
type TerminologyEntry struct {
	// Term is the canonical, case-sensitive name.
	Term string

	// Definition is the definition text.
	Definition string

	// Aliases are alternative names that resolve to this entry.
	Aliases []string

	// Category groups the entry.
	Category TermCategory

	// SourceFile is the path of the file that defined the term.
	SourceFile string

	// Line is the 1-based line of the definition.
	Line int
}

// TermIndex maps canonical terms and aliases to terminology entries.
// Aliases resolve to the same entry as the canonical term.
type TermIndex struct {
	entries map[string]*TerminologyEntry // canonical term -> entry
	aliases map[string]string            // alias -> canonical term
}

// NewTermIndex creates an empty term index.
func NewTermIndex() *TermIndex {
	return &TermIndex{
		entries: make(map[string]*TerminologyEntry),
		aliases: make(map[string]string),
	}
}

// Put inserts or overwrites an entry. It returns the previous entry when
// the term was already defined, so callers can report redefinitions.
func (x *TermIndex) Put(entry TerminologyEntry) *TerminologyEntry {
	prev := x.entries[entry.Term]
	e := entry
	x.entries[entry.Term] = &e
	for _, alias := range entry.Aliases {
		x.aliases[alias] = entry.Term
	}
	return prev
}

// Resolve looks up a term or alias. Alias lookup falls back to the
// canonical entry.
func (x *TermIndex) Resolve(name string) (*TerminologyEntry, bool) {
	if e, ok := x.entries[name]; ok {
		return e, true
	}
	if canonical, ok := x.aliases[name]; ok {
		e, ok := x.entries[canonical]
		return e, ok
	}
	return nil, false
}

// Has reports whether a term or alias is defined.
func (x *TermIndex) Has(name string) bool {
	_, ok := x.Resolve(name)
	return ok
}

// Len returns the number of canonical entries.
func (x *TermIndex) Len() int {
	return len(x.entries)
}

// Terms returns all canonical terms in sorted order. Iteration over the
// index must never depend on map order.
func (x *TermIndex) Terms() []string {
	terms := make([]string, 0, len(x.entries))
	for term := range x.entries {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Names returns all canonical terms and aliases in sorted order.
func (x *TermIndex) Names() []string {
	names := make([]string, 0, len(x.entries)+len(x.aliases))
	for term := range x.entries {
		names = append(names, term)
	}
	for alias := range x.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Missing returns the required terms absent from the index, preserving
// the order of required.
func (x *TermIndex) Missing(required []string) []string {
	var missing []string
	for _, term := range required {
		if !x.Has(term) {
			missing = append(missing, term)
		}
	}
	return missing
}

// Entries returns all canonical entries sorted by term.
func (x *TermIndex) Entries() []TerminologyEntry {
	out := make([]TerminologyEntry, 0, len(x.entries))
	for _, term := range x.Terms() {
		out = append(out, *x.entries[term])
	}
	return out
}

// CategoriseTerm infers the category for a canonical term.
func CategoriseTerm(term string) TermCategory {
	switch term {
	case "ATO", "SEM", "CLU", "MEMA":
		return CategoryMarkerLevel
	}
	if strings.HasPrefix(term, "me ") {
		return CategoryCLICommand
	}
	return CategoryGeneral
}
