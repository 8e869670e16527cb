package domain

// Config carries the validation parameters for one run. A zero value is
// not usable; start from DefaultConfig and override.
type Config struct {
	// Strict escalates warnings to errors and makes them build-failing.
	Strict bool

	// MinContentLength is the character floor below which a file gets a
	// content completeness warning.
	MinContentLength int

	// RequiredTerms must all be defined by the terminology file.
	RequiredTerms []string

	// ComplianceKeyword must appear in the marker specification file.
	ComplianceKeyword string

	// MinTermLength is the shortest term considered during the
	// undefined-term scan. Shorter tokens produce too many false
	// positives.
	MinTermLength int

	// Stoplist lists tokens the undefined-term heuristic ignores.
	Stoplist []string

	// TargetFiles, when non-empty, restricts per-file rules to the
	// named files. Cross-file steps still see the whole corpus.
	TargetFiles []string

	// ParseWorkers bounds concurrent file parsing. Results are
	// re-sorted after the join so output stays deterministic.
	ParseWorkers int
}

// DefaultConfig returns the built-in configuration. The required terms
// default to the four LD-3.4 marker levels so the tool works with zero
// configuration.
func DefaultConfig() Config {
	return Config{
		Strict:            false,
		MinContentLength:  100,
		RequiredTerms:     []string{"ATO", "SEM", "CLU", "MEMA"},
		ComplianceKeyword: "LD-3.4",
		MinTermLength:     3,
		Stoplist:          defaultStoplist(),
		ParseWorkers:      4,
	}
}

// defaultStoplist covers upper-case English words and markdown-adjacent
// tokens that would otherwise trip the undefined-term heuristic.
func defaultStoplist() []string {
	return []string{
		"API", "CLI", "JSON", "HTTP", "HTTPS", "README", "TODO",
		"NOTE", "WARNING", "ERROR", "INFO", "OK", "URL", "URI",
		"UTF", "SQL", "TOML", "YAML", "PDF", "GUI", "THE", "AND",
	}
}

// Stopped reports whether a token is on the stoplist.
func (c *Config) Stopped(token string) bool {
	for _, s := range c.Stoplist {
		if s == token {
			return true
		}
	}
	return false
}

// Targeted reports whether per-file rules apply to the given path. An
// empty target list means every file is in scope.
func (c *Config) Targeted(path string) bool {
	if len(c.TargetFiles) == 0 {
		return true
	}
	for _, t := range c.TargetFiles {
		if t == path {
			return true
		}
	}
	return false
}
