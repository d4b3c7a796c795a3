// Package commands implements the statement CLI.
package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "statement",
		Short: "Extract expense transactions from bank statements",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each extraction strategy attempt")

	logger := func(w io.Writer) *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	}

	rootCmd.AddCommand(newPreviewCommand(logger))
	rootCmd.AddCommand(newExtractCommand(logger))

	return rootCmd
}
