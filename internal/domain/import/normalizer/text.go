// Package normalizer cleans raw statement text before any field is parsed.
// text.go strips currency markers and locale noise and collapses whitespace.
package normalizer

import (
	"regexp"
	"strings"
)

// currencyMarkers are removed from statement text. Order matters: "Rs." must
// be replaced before "Rs" so the trailing dot does not survive.
var currencyMarkers = []string{"₹", "INR", "Rs.", "Rs"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean converts non-breaking spaces to spaces, removes currency markers and
// collapses whitespace runs into single spaces. Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\u00a0", " ")
	for _, marker := range currencyMarkers {
		// Replace with a space so removal never glues neighbouring tokens into a new marker
		s = strings.ReplaceAll(s, marker, " ")
	}
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Lines splits text on any line break (\n, \r\n, \r) without normalizing the lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// CleanLines normalizes each line and returns at most limit of them along with
// the total number of lines in text. A limit <= 0 returns every line.
func CleanLines(text string, limit int) ([]string, int) {
	lines := Lines(text)
	n := len(lines)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, 0, n)
	for _, line := range lines[:n] {
		out = append(out, Clean(line))
	}
	return out, len(lines)
}

// CollapseSpaces collapses runs of two or more spaces and trims the result.
func CollapseSpaces(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}
