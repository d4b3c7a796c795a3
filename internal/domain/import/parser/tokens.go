package parser

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Span is a half-open byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Before reports whether s ends at or before o starts.
func (s Span) Before(o Span) bool {
	return s.End <= o.Start
}

// lineDatePatterns are searched in order inside free text lines.
var lineDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`),
	regexp.MustCompile(`\b\d{2}-[A-Za-z]{3}-\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4}\b`),
	regexp.MustCompile(`\b[A-Za-z]{3}\s+\d{1,2},\s+\d{4}\b`),
}

// FindDate returns the first date token in line. Patterns are tried in order and a
// pattern whose first match does not parse hands over to the next pattern.
func FindDate(line string) (time.Time, Span, bool) {
	for _, re := range lineDatePatterns {
		loc := re.FindStringIndex(line)
		if loc == nil {
			continue
		}
		d, err := ParseDate(line[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		return d, Span{Start: loc[0], End: loc[1]}, true
	}
	return time.Time{}, Span{}, false
}

// FindLastAmount returns the right-most amount token in line. Callers decide
// whether its span collides with other tokens such as a date.
func FindLastAmount(line string) (decimal.Decimal, Span, bool) {
	matches := amountToken.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, Span{}, false
	}
	last := matches[len(matches)-1]
	span := Span{Start: last[0], End: last[1]}
	amount, err := ParseAmount(line[span.Start:span.End])
	if err != nil {
		return decimal.Zero, Span{}, false
	}
	return amount, span, true
}
