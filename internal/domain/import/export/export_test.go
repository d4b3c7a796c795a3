package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/extraction"
)

var sample = []extraction.Tx{
	{
		Date:        time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Description: "Coffee Shop",
		Amount:      decimal.RequireFromString("150"),
		Raw:         "01/09/2025 | Coffee Shop | 150.00 | ",
	},
	{
		Date:        time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
		Description: "Grocery, Store",
		Amount:      decimal.RequireFromString("1234.5"),
		Raw:         "04 Oct 2025 Grocery, Store -1,234.50",
	},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample))

	want := "date,description,amount,raw\n" +
		"2025-09-01,Coffee Shop,150.00,01/09/2025 | Coffee Shop | 150.00 | \n" +
		"2025-10-04,\"Grocery, Store\",1234.50,\"04 Oct 2025 Grocery, Store -1,234.50\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	header, err := f.GetCellValue(SheetName, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Amount", header)

	desc, err := f.GetCellValue(SheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Grocery, Store", desc)

	amount, err := f.GetCellValue(SheetName, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.50", amount)

	date, err := f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", date)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("ods"), sample)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
