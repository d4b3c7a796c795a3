package extraction

import (
	"strings"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/parser"
)

// LineScanStrategy is the last resort for free-form text. Each line must hold one
// date and one amount; the description is whatever sits between them.
type LineScanStrategy struct{}

func (LineScanStrategy) Name() string { return "line_scan" }

func (s LineScanStrategy) Extract(doc Document) Result {
	var res Result
	for _, raw := range normalizer.Lines(doc.Text) {
		line := normalizer.Clean(raw)
		if line == "" {
			continue
		}
		res.Considered++
		if tx, ok := ScanLine(line); ok {
			tx.Raw = strings.TrimSpace(raw)
			res.Txs = append(res.Txs, tx)
		}
	}
	return res
}

// ScanLine recognizes an expense in a single normalized line. A line counts as an
// expense when it says DEBIT or its amount is negative; lines saying CREDIT are
// never expenses.
func ScanLine(line string) (Tx, bool) {
	dir := directionOf(line)
	if dir == directionCredit {
		return Tx{}, false
	}

	date, dateSpan, ok := parser.FindDate(line)
	if !ok {
		return Tx{}, false
	}
	amount, amountSpan, ok := parser.FindLastAmount(line)
	if !ok || amountSpan.Overlaps(dateSpan) {
		return Tx{}, false
	}

	var between string
	switch {
	case dateSpan.Before(amountSpan):
		between = line[dateSpan.End:amountSpan.Start]
	case amountSpan.Before(dateSpan):
		between = line[amountSpan.End:dateSpan.Start]
	default:
		return Tx{}, false
	}

	desc := normalizer.CollapseSpaces(between)
	if desc == "" {
		return Tx{}, false
	}
	if dir != directionDebit && !amount.IsNegative() {
		return Tx{}, false
	}

	return Tx{
		Date:        date,
		Description: desc,
		Amount:      amount.Abs(),
		Raw:         line,
	}, true
}
