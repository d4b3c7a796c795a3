package extraction

import (
	"strings"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/parser"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/sniffer"
)

// TableStrategy reads segmented tables. It only emits debits: rows whose type
// column mentions CREDIT are dropped, and the amount keeps the sign it was
// printed with.
type TableStrategy struct{}

func (TableStrategy) Name() string { return "table" }

func (s TableStrategy) Extract(doc Document) Result {
	var res Result
	for _, tables := range doc.Pages {
		for _, table := range tables {
			txs, considered := ExtractTable(table)
			res.Txs = append(res.Txs, txs...)
			res.Considered += considered
		}
	}
	return res
}

// ExtractTable emits the debit rows of one table along with the number of data
// rows it examined. A table whose date, amount or description column cannot be
// identified yields nothing.
func ExtractTable(table Table) ([]Tx, int) {
	matrix := cleanMatrix(table)
	roles := sniffer.InferRoles(matrix)
	if roles.Validate() != nil {
		return nil, 0
	}

	var (
		txs        []Tx
		considered int
	)
	for _, row := range matrix[roles.DataStart():] {
		if isBlankRow(row) {
			continue
		}
		considered++
		if tx, ok := rowToTx(row, roles); ok {
			txs = append(txs, tx)
		}
	}
	return txs, considered
}

func rowToTx(row []string, roles sniffer.Roles) (Tx, bool) {
	if roles.Type >= 0 && mentionsCredit(cell(row, roles.Type)) {
		return Tx{}, false
	}

	dateCell, amountCell := cell(row, roles.Date), cell(row, roles.Amount)
	if dateCell == "" && amountCell == "" {
		return Tx{}, false
	}

	date, err := parser.ParseDate(dateCell)
	if err != nil {
		return Tx{}, false
	}
	amount, err := parser.ParseAmount(amountCell)
	if err != nil || amount.IsZero() {
		return Tx{}, false
	}

	desc := cell(row, roles.Description)
	if desc == "" {
		desc = placeholderDescription
	}
	return Tx{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Raw:         strings.Join(row, " | "),
	}, true
}

func cleanMatrix(table Table) [][]string {
	matrix := make([][]string, len(table))
	for i, row := range table {
		cleaned := make([]string, len(row))
		for j, c := range row {
			cleaned[j] = normalizer.Clean(c)
		}
		matrix[i] = cleaned
	}
	return matrix
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
