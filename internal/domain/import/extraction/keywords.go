package extraction

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

type direction int

const (
	directionNone direction = iota
	directionDebit
	directionCredit
)

var (
	// indices follow the dictionary order: DEBIT is checked before CREDIT.
	directionWords    = ahocorasick.NewStringMatcher([]string{"DEBIT", "CREDIT"})
	statusHeaderWords = ahocorasick.NewStringMatcher([]string{"NAME", "AMOUNT", "DATE", "STATUS"})
)

// directionOf classifies an explicit debit/credit keyword in s. A line mentioning
// both is a debit.
func directionOf(s string) direction {
	hits := directionWords.MatchThreadSafe([]byte(strings.ToUpper(s)))
	var debit, credit bool
	for _, idx := range hits {
		switch idx {
		case 0:
			debit = true
		case 1:
			credit = true
		}
	}
	switch {
	case debit:
		return directionDebit
	case credit:
		return directionCredit
	default:
		return directionNone
	}
}

// mentionsCredit reports whether s contains CREDIT in any case.
func mentionsCredit(s string) bool {
	for _, idx := range directionWords.MatchThreadSafe([]byte(strings.ToUpper(s))) {
		if idx == 1 {
			return true
		}
	}
	return false
}

// isStatusHeader reports whether line carries all four column titles of the
// status-grammar export.
func isStatusHeader(line string) bool {
	return len(statusHeaderWords.MatchThreadSafe([]byte(strings.ToUpper(line)))) == 4
}
