package sniffer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var (
	ErrEmptyFile        = errors.New("file is empty")
	ErrInvalidDelimiter = errors.New("could not detect valid delimiter")
)

// ReadDelimited reads a CSV/TSV export into a ragged cell matrix so it can go
// through the same role inference as a PDF table. The delimiter is the one that
// occurs most often on the first non-blank line.
func ReadDelimited(data []byte) ([][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var delimiter rune
	for i, line := range strings.Split(string(data), "\n") {
		line = cleanLine(line, i == 0)
		if line == "" {
			continue
		}
		delimiter, _ = detectDelimiter(line)
		break
	}
	if delimiter == 0 {
		return nil, ErrInvalidDelimiter
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF"))))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func cleanLine(line string, firstLine bool) string {
	line = strings.TrimRight(line, "\r")
	if firstLine {
		line = strings.TrimPrefix(line, "\uFEFF")
	}
	return strings.TrimSpace(line)
}

func detectDelimiter(line string) (rune, int) {
	delimiters := []rune{';', '\t', ',', '|'}
	bestDelimiter := rune(0)
	bestCount := 0
	for _, d := range delimiters {
		count := strings.Count(line, string(d))
		if count > bestCount {
			bestCount = count
			bestDelimiter = d
		}
	}
	return bestDelimiter, bestCount
}
