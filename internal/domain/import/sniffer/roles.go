// Package sniffer infers what the columns of a statement table mean.
// Roles come from header keywords first and from cell content statistics second.
package sniffer

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/parser"
)

// ErrRoleResolution is returned when a table lacks a date, amount or description column.
var ErrRoleResolution = errors.New("column roles unresolved")

const (
	// headerScanRows bounds how many leading rows may hold header keywords.
	headerScanRows = 3
	// sampleRows bounds how many data rows feed the content statistics.
	sampleRows = 10
)

// Header keyword families, matched against lowercased cells.
var (
	dateHeader   = regexp.MustCompile(`\b(date|txn\s*date|transaction\s*date)\b`)
	amountHeader = regexp.MustCompile(`\b(amount|debit|withdrawal|dr|value)\b`)
	descHeader   = regexp.MustCompile(`\b(description|narration|particulars|details|merchant|receiver)\b`)
	typeHeader   = regexp.MustCompile(`\b(type|dr|cr|debit|credit)\b`)
)

// Roles maps each semantic role to a column index. -1 means unresolved.
type Roles struct {
	Date        int
	Amount      int
	Description int
	Type        int
	// HeaderRow is the index of the header row, or -1 when none was found.
	HeaderRow int
}

func unresolved() Roles {
	return Roles{Date: -1, Amount: -1, Description: -1, Type: -1, HeaderRow: -1}
}

// DataStart is the index of the first data row.
func (r Roles) DataStart() int {
	return r.HeaderRow + 1
}

// Validate returns a wrapped ErrRoleResolution naming the missing roles.
func (r Roles) Validate() error {
	var missing []string
	if r.Date < 0 {
		missing = append(missing, "date")
	}
	if r.Amount < 0 {
		missing = append(missing, "amount")
	}
	if r.Description < 0 {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrRoleResolution, strings.Join(missing, ", "))
	}
	return nil
}

// InferRoles assigns column roles for a row-major matrix of cleaned cells.
// Rows may be ragged. The result depends only on the matrix, and every tie is
// broken in favour of the lowest column index.
func InferRoles(matrix [][]string) Roles {
	roles := unresolved()
	scanHeader(matrix, &roles)

	data := matrix[roles.DataStart():]

	if roles.Date < 0 || roles.Amount < 0 {
		inferFromContent(data, &roles)
	}
	if roles.Description < 0 {
		roles.Description = longestColumn(data, width(matrix), roles.Date, roles.Amount)
	}
	return roles
}

func scanHeader(matrix [][]string, roles *Roles) {
	for i := 0; i < len(matrix) && i < headerScanRows; i++ {
		resolvedHere := false
		for col, cell := range matrix[i] {
			h := strings.ToLower(strings.TrimSpace(cell))
			if h == "" {
				continue
			}
			if roles.Date < 0 && dateHeader.MatchString(h) {
				roles.Date = col
				resolvedHere = true
			}
			if roles.Amount < 0 && amountHeader.MatchString(h) {
				roles.Amount = col
				resolvedHere = true
			}
			if roles.Description < 0 && descHeader.MatchString(h) {
				roles.Description = col
				resolvedHere = true
			}
			if roles.Type < 0 && typeHeader.MatchString(h) {
				roles.Type = col
			}
		}
		if resolvedHere && roles.HeaderRow < 0 {
			roles.HeaderRow = i
		}
	}
}

// inferFromContent fills the date and amount roles from cell shapes in the first
// data rows. A column needs at least one hit to win.
func inferFromContent(data [][]string, roles *Roles) {
	if len(data) > sampleRows {
		data = data[:sampleRows]
	}
	cols := width(data)
	dateHits := make([]int, cols)
	amountHits := make([]int, cols)
	for _, row := range data {
		for col, cell := range row {
			if parser.IsDateLike(cell) {
				dateHits[col]++
			}
			if parser.IsAmountLike(cell) {
				amountHits[col]++
			}
		}
	}

	if roles.Date < 0 {
		roles.Date = argmax(dateHits, roles.Amount)
	}
	if roles.Amount < 0 {
		roles.Amount = argmax(amountHits, roles.Date)
	}
}

// longestColumn picks the column with the highest average text length over all
// data rows. Missing cells count as empty.
func longestColumn(data [][]string, cols int, exclude ...int) int {
	if len(data) == 0 {
		return -1
	}
	totals := make([]int, cols)
	for _, row := range data {
		for col, cell := range row {
			totals[col] += len([]rune(cell))
		}
	}
	// Averages share a denominator, so comparing totals is equivalent.
	return argmax(totals, exclude...)
}

// argmax returns the first index holding the largest positive score, skipping
// excluded indices. It returns -1 when every score is zero.
func argmax(scores []int, exclude ...int) int {
	best, bestScore := -1, 0
	for i, score := range scores {
		if slices.Contains(exclude, i) {
			continue
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func width(matrix [][]string) int {
	maxCols := 0
	for _, row := range matrix {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	return maxCols
}
