// Package export renders extracted transactions as CSV or XLSX.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/extraction"
)

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet holding transactions in XLSX output.
const SheetName = "Transactions"

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Row is one transaction as written to a file.
type Row struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Raw         string `csv:"raw"`
}

// Rows converts transactions to rows, with ISO dates and unsigned amounts to two
// decimal places.
func Rows(txs []extraction.Tx) []*Row {
	rows := make([]*Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, &Row{
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Amount:      tx.Amount.Abs().StringFixed(2),
			Raw:         tx.Raw,
		})
	}
	return rows
}

// Write renders txs to w in the given format.
func Write(w io.Writer, format Format, txs []extraction.Tx) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, txs)
	case FormatXLSX:
		return WriteXLSX(w, txs)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteCSV writes a header line followed by one line per transaction.
func WriteCSV(w io.Writer, txs []extraction.Tx) error {
	rows := Rows(txs)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with a single Transactions sheet. Amounts are
// numeric cells so they can be summed.
func WriteXLSX(w io.Writer, txs []extraction.Tx) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]any{"Date", "Description", "Amount", "Raw"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, tx := range txs {
		rowIdx := i + 2
		dateCell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(SheetName, dateCell, &[]any{tx.Date.Format("2006-01-02"), tx.Description}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowIdx, err)
		}

		amountCell, _ := excelize.CoordinatesToCellName(3, rowIdx)
		if err := f.SetCellFloat(SheetName, amountCell, tx.Amount.InexactFloat64(), 2, 64); err != nil {
			return fmt.Errorf("failed to write amount %d: %w", rowIdx, err)
		}
		if err := f.SetCellStyle(SheetName, amountCell, amountCell, amountStyle); err != nil {
			return fmt.Errorf("failed to style amount %d: %w", rowIdx, err)
		}

		rawCell, _ := excelize.CoordinatesToCellName(4, rowIdx)
		if err := f.SetCellStr(SheetName, rawCell, tx.Raw); err != nil {
			return fmt.Errorf("failed to write raw %d: %w", rowIdx, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
