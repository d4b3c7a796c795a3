package pdftext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/pdftext/pdftest"
)

func statementPage() string {
	return strings.Join([]string{
		pdftest.Show(50, 720, "Statement of account"),
		pdftest.Show(50, 700, "Date"), pdftest.Show(150, 700, "Description"), pdftest.Show(300, 700, "Debit"),
		pdftest.Show(50, 685, "01/09/2025"), pdftest.Show(150, 685, "Coffee Shop"), pdftest.Show(306, 685, "150.00"),
		pdftest.Show(50, 670, "02/09/2025"), pdftest.Show(150, 670, "Book Store"), pdftest.Show(300, 670, "1200.00"),
	}, "\n")
}

func TestExtractText(t *testing.T) {
	data := pdftest.BuildPDF(statementPage(), pdftest.Show(50, 700, "04 Oct 2025 Grocery Store -450.00"))

	text, err := ExtractText(data)

	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Statement of account",
		"Date Description Debit",
		"01/09/2025 Coffee Shop 150.00",
		"02/09/2025 Book Store 1200.00",
		"04 Oct 2025 Grocery Store -450.00",
	}, "\n"), text)
}

func TestExtractText_NoTextLayer(t *testing.T) {
	data := pdftest.BuildPDF("q Q")

	_, err := ExtractText(data)

	assert.ErrorIs(t, err, ErrNoExtractableText)
}

func TestExtractText_NotAPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is a plain text file, not a statement"))

	assert.ErrorIs(t, err, ErrUnreadableDocument)
}

func TestSegmenter(t *testing.T) {
	data := pdftest.BuildPDF(statementPage(), pdftest.Show(50, 700, "Nothing tabular here"))
	seg := Segmenter{}

	n, err := seg.PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tables, err := seg.Tables(data, 1)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"01/09/2025", "Coffee Shop", "150.00"}, tables[0][1])

	tables, err = seg.Tables(data, 2)
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = seg.Tables(data, 3)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}
