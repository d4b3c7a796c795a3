package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
	importservice "github.com/FACorreiaa/statement-importer/internal/domain/import/service"
)

func newPreviewCommand(logger func(io.Writer) *slog.Logger) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the normalized text lines the extractors see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService("", logger(cmd.ErrOrStderr())).
				WithOptions(importservice.Options{PreviewLines: lines})
			return runPreview(cmd.OutOrStdout(), svc, args[0], lines)
		},
	}

	cmd.Flags().IntVar(&lines, "lines", 120, "maximum number of lines to print")

	return cmd
}

func runPreview(w io.Writer, svc *importservice.ImportService, path string, limit int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var preview *importservice.Preview
	if kindOf(path) == kindPDF {
		if preview, err = svc.Preview(data); err != nil {
			return err
		}
	} else {
		lines, total := normalizer.CleanLines(string(data), limit)
		preview = &importservice.Preview{Lines: lines, TotalLines: total}
	}

	for i, line := range preview.Lines {
		fmt.Fprintf(w, "%4d  %s\n", i+1, line)
	}
	fmt.Fprintf(w, "-- %d of %d lines\n", len(preview.Lines), preview.TotalLines)
	return nil
}
