package extraction

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/parser"
)

// DefaultRegion is the state column printed by the status-grammar export.
const DefaultRegion = "Karnataka"

// StatusTextStrategy recognizes the payment-app export whose rows read
//
//	NAME  REGION  ACCOUNT  AMOUNT  D Month YYYY  SUCCESS|FAILED
//
// A negative amount marks money paid out. Only those rows are kept, as positive
// amounts.
type StatusTextStrategy struct {
	row *regexp.Regexp
}

// NewStatusTextStrategy builds the row grammar for the given region token.
func NewStatusTextStrategy(region string) *StatusTextStrategy {
	if strings.TrimSpace(region) == "" {
		region = DefaultRegion
	}
	return &StatusTextStrategy{
		row: regexp.MustCompile(`(?i)^(.*?)\s+` + regexp.QuoteMeta(region) +
			`\s+(?:X+\d+|\d+)\s+([+\-]?\d+(?:\.\d{1,2})?)\s+(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})\s+(SUCCESS|FAILED)\s*$`),
	}
}

func (s *StatusTextStrategy) Name() string { return "status_text" }

func (s *StatusTextStrategy) Extract(doc Document) Result {
	lines := normalizer.Lines(doc.Text)
	if !hasStatusHeader(lines) {
		return Result{}
	}

	var res Result
	for _, raw := range lines {
		line := normalizer.Clean(raw)
		if line == "" || isStatusHeader(line) || strings.HasPrefix(strings.ToUpper(line), "TRANSACTION HISTORY") {
			continue
		}
		res.Considered++
		if tx, ok := s.matchRow(line); ok {
			res.Txs = append(res.Txs, tx)
		}
	}
	return res
}

func (s *StatusTextStrategy) matchRow(line string) (Tx, bool) {
	m := s.row.FindStringSubmatch(line)
	if m == nil {
		return Tx{}, false
	}

	amount, err := parser.ParseAmount(m[2])
	if err != nil || !amount.IsNegative() {
		return Tx{}, false
	}
	date, err := parser.ParseDate(m[3])
	if err != nil {
		return Tx{}, false
	}

	name := strings.TrimSpace(m[1])
	if name == "" {
		name = placeholderDescription
	}
	return Tx{
		Date:        date,
		Description: name,
		Amount:      amount.Abs(),
		Raw:         line,
	}, true
}

func hasStatusHeader(lines []string) bool {
	for _, line := range lines {
		if isStatusHeader(line) {
			return true
		}
	}
	return false
}
