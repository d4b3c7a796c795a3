// Package parser turns statement tokens into typed values.
// Amounts are exact decimals and dates are calendar days at UTC midnight.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
)

// ErrInvalidAmount is returned when a token is not a decimal numeral once noise is stripped.
var ErrInvalidAmount = errors.New("invalid amount")

var decimalNumeral = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// amountExpr recognizes an amount token: optional currency prefix, optional sign or
// opening parenthesis, grouped or plain integer part, up to 2 fractional digits.
const amountExpr = `(?:₹|INR|Rs\.?\s*)?[+\-(]?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?\)?`

var (
	amountToken = regexp.MustCompile(amountExpr)
	amountShape = regexp.MustCompile(`^` + amountExpr + `$`)
)

// ParseAmount parses tokens such as "₹1,234.50", "+50.00", "-450" or "(1,234.50)".
// The value is negative when the token starts or ends with "-" or is wrapped in
// parentheses.
func ParseAmount(token string) (decimal.Decimal, error) {
	s := normalizer.Clean(token)
	s = strings.NewReplacer(",", "", " ", "", "+", "").Replace(s)

	negative := strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))

	s = strings.NewReplacer("-", "", "(", "", ")", "").Replace(s)
	if !decimalNumeral.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, token)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, token, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// IsAmountLike reports whether the whole cell has the shape of an amount token.
func IsAmountLike(cell string) bool {
	return amountShape.MatchString(strings.TrimSpace(cell))
}
