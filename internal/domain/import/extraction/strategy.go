// Package extraction recognizes expense transactions in statement content.
//
// Each Strategy is a pure function of a Document. Strategies are ordered from the
// most structured (cell grids) to the least (free text lines), and callers stop
// at the first one that produces transactions.
package extraction

import (
	"time"

	"github.com/shopspring/decimal"
)

// placeholderDescription replaces blank descriptions on emitted transactions.
const placeholderDescription = "Transaction"

// Tx is a recognized transaction before it becomes an expense record.
type Tx struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	// Raw is the source row or line, kept for error reporting.
	Raw string
}

// Table is a grid of raw cells as produced by table segmentation. Rows may be ragged.
type Table [][]string

// Document is the extracted content of one uploaded statement.
type Document struct {
	// Text is the full plain text, lines separated by "\n".
	Text string
	// Pages holds the tables found on each page, in page order.
	Pages [][]Table
}

// Result is what a strategy recognized in a document.
type Result struct {
	Txs []Tx
	// Considered counts the rows or lines the strategy examined as candidates.
	Considered int
}

// Strategy turns document content into transactions.
type Strategy interface {
	Name() string
	Extract(doc Document) Result
}

// Chain returns the default strategy order: tables, then the fixed status grammar,
// then the generic line scanner.
func Chain(region string) []Strategy {
	return []Strategy{
		TableStrategy{},
		NewStatusTextStrategy(region),
		LineScanStrategy{},
	}
}
