package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/extraction"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/pdftext"
	importservice "github.com/FACorreiaa/statement-importer/internal/domain/import/service"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/sniffer"
)

type inputKind int

const (
	kindPDF inputKind = iota
	kindText
	kindDelimited
)

func kindOf(path string) inputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return kindText
	case ".csv", ".tsv":
		return kindDelimited
	default:
		return kindPDF
	}
}

// newService builds an extraction-only service; nothing is persisted from the CLI.
func newService(region string, logger *slog.Logger) *importservice.ImportService {
	return importservice.NewImportService(nil, pdftext.Extractor{}, pdftext.Segmenter{}, logger).
		WithOptions(importservice.Options{Region: region})
}

// loadDocument reads path into a Document according to its extension.
func loadDocument(svc *importservice.ImportService, path string) (extraction.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extraction.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	switch kindOf(path) {
	case kindText:
		return extraction.Document{Text: string(data)}, nil
	case kindDelimited:
		matrix, err := sniffer.ReadDelimited(data)
		if err != nil {
			return extraction.Document{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return extraction.Document{
			Text:  string(data),
			Pages: [][]extraction.Table{{extraction.Table(matrix)}},
		}, nil
	default:
		return svc.LoadDocument(data)
	}
}
