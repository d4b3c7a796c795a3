package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/export"
)

func newExtractCommand(logger func(io.Writer) *slog.Logger) *cobra.Command {
	var format string
	var out string
	var region string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract expense transactions to CSV or XLSX",
		Long: "Runs the table, status-grammar and line-scan extractors in order and writes the\n" +
			"transactions of the first one that recognizes anything. PDF, plain text (.txt)\n" +
			"and delimited (.csv, .tsv) statements are accepted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return runExtract(cmd, logger(cmd.ErrOrStderr()), args[0], f, out, region)
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&region, "region", "", "region token of status-grammar exports (default Karnataka)")

	return cmd
}

func runExtract(cmd *cobra.Command, logger *slog.Logger, path string, format export.Format, out, region string) error {
	svc := newService(region, logger)

	doc, err := loadDocument(svc, path)
	if err != nil {
		return err
	}
	rec := svc.Recognize(doc)

	w := cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, rec.Txs); err != nil {
		return err
	}

	strategy := rec.Strategy
	if strategy == "" {
		strategy = "none"
	}
	total, err := svc.Total(rec.Txs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "strategy=%s transactions=%d considered=%d total=%s\n",
		strategy, len(rec.Txs), rec.Considered, total.String())
	return nil
}
