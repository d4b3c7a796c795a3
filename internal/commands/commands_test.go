package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runStatement(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const textStatement = "04 Oct 2025  Grocery Store  -450.00\n04 Oct 2025  Refund  +450.00"

func TestExtract_DelimitedGoesThroughTableStrategy(t *testing.T) {
	path := writeFile(t, "september.csv",
		"Txn Date,Narration,Type,Amount\n"+
			"01/09/2025,Coffee Shop,DEBIT,150.00\n"+
			"02/09/2025,Salary,CREDIT,50000.00\n")

	stdout, stderr, err := runStatement(t, "extract", path)

	require.NoError(t, err)
	assert.Equal(t, "date,description,amount,raw\n"+
		"2025-09-01,Coffee Shop,150.00,01/09/2025 | Coffee Shop | DEBIT | 150.00\n", stdout)
	assert.Contains(t, stderr, "strategy=table transactions=1 considered=2 total=150.00")
}

func TestExtract_TextToXLSX(t *testing.T) {
	path := writeFile(t, "october.txt", textStatement)
	out := filepath.Join(t.TempDir(), "october.xlsx")

	_, stderr, err := runStatement(t, "extract", path, "--format", "xlsx", "--out", out)

	require.NoError(t, err)
	assert.Contains(t, stderr, "strategy=line_scan transactions=1 considered=2 total=450.00")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	desc, err := f.GetCellValue("Transactions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Grocery Store", desc)
}

func TestExtract_NothingRecognized(t *testing.T) {
	path := writeFile(t, "notes.txt", "hello\nworld")

	stdout, stderr, err := runStatement(t, "extract", path)

	require.NoError(t, err)
	assert.Equal(t, "date,description,amount,raw\n", stdout)
	assert.Contains(t, stderr, "strategy=none transactions=0 considered=2")
}

func TestExtract_Errors(t *testing.T) {
	path := writeFile(t, "october.txt", textStatement)

	_, _, err := runStatement(t, "extract", path, "--format", "ods")
	assert.ErrorContains(t, err, "unknown export format")

	_, _, err = runStatement(t, "extract", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "missing.txt")

	_, _, err = runStatement(t, "extract", writeFile(t, "scan.pdf", "not a pdf"))
	assert.Error(t, err)

	_, _, err = runStatement(t, "extract")
	assert.Error(t, err)
}

func TestPreview_Text(t *testing.T) {
	path := writeFile(t, "october.txt", textStatement)

	stdout, _, err := runStatement(t, "preview", path, "--lines", "1")

	require.NoError(t, err)
	assert.Equal(t, "   1  04 Oct 2025 Grocery Store -450.00\n-- 1 of 2 lines\n", stdout)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, kindPDF, kindOf("a.PDF"))
	assert.Equal(t, kindPDF, kindOf("statement"))
	assert.Equal(t, kindText, kindOf("a.txt"))
	assert.Equal(t, kindDelimited, kindOf("a.TSV"))
}
