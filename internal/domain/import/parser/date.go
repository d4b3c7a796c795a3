package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
)

// ErrInvalidDate is returned when no supported date grammar matches.
var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order; the first successful parse wins.
// Month names match case-insensitively. Two-digit years follow time.Parse:
// 69-99 map to 19xx and 00-68 to 20xx.
var dateLayouts = []string{
	"2006-01-02",     // ISO
	"02/01/2006",     // DD/MM/YYYY
	"02-Jan-2006",    // DD-Mon-YYYY
	"02-Jan-06",      // DD-Mon-YY
	"2 Jan 2006",     // DD Mon YYYY
	"2 January 2006", // D Month YYYY
	"Jan 2, 2006",    // Mon D, YYYY
}

// ParseDate returns the calendar day (UTC midnight) for the first layout that matches.
func ParseDate(s string) (time.Time, error) {
	value := normalizer.CollapseSpaces(s)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// dateShapes are the whole-cell shapes counted when inferring a date column.
var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}-[A-Za-z]{3}-\d{2,4}$`),
	regexp.MustCompile(`^\d{2}\s+[A-Za-z]{3}\s+\d{4}$`),
	regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4}$`),
	regexp.MustCompile(`^[A-Za-z]{3}\s+\d{1,2},\s+\d{4}$`),
}

// IsDateLike reports whether the whole cell has the shape of a supported date.
// It does not validate the calendar value.
func IsDateLike(cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, re := range dateShapes {
		if re.MatchString(cell) {
			return true
		}
	}
	return false
}
