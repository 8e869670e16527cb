package domain

import (
	"strings"
	"unicode"
)

// HeadingSlug converts heading text to its markdown anchor form:
// lowercased, punctuation stripped, whitespace collapsed to hyphens.
func HeadingSlug(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// Other punctuation is dropped.
	}

	return strings.TrimSuffix(b.String(), "-")
}

// splitLines splits content on newlines, tolerating CRLF endings.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
