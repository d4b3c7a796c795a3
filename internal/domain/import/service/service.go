// Package service provides the import orchestration logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/statement-importer/internal/domain/expense"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/extraction"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/normalizer"
	"github.com/FACorreiaa/statement-importer/internal/domain/import/repository"
	"github.com/FACorreiaa/statement-importer/pkg/metrics"
	"github.com/FACorreiaa/statement-importer/pkg/money"
)

// TextExtractor returns the plain text of a document, failing with a
// distinguishable error when the document has no text layer.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// TableSegmenter splits document pages into cell grids.
type TableSegmenter interface {
	PageCount(data []byte) (int, error)
	Tables(data []byte, page int) ([]extraction.Table, error)
}

// MetricsRecorder receives one observation per finished import.
type MetricsRecorder interface {
	ObserveImport(strategy, outcome string, imported, failed, skipped int, elapsed time.Duration)
}

// Options tune extraction and materialization.
type Options struct {
	PreviewLines int
	Currency     string
	Region       string
	CategoryName string
}

// DefaultOptions returns the settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		PreviewLines: 120,
		Currency:     "INR",
		Region:       extraction.DefaultRegion,
		CategoryName: "Uncategorized",
	}
}

// Preview is the normalized text of a document, for tuning heuristics.
type Preview struct {
	Lines      []string `json:"lines"`
	TotalLines int      `json:"totalLines"`
}

// RowError describes a recognized transaction that could not be stored.
type RowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// ImportResult contains the result of an import operation
type ImportResult struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
	Strategy string     `json:"strategy,omitempty"`
}

// Recognition is the output of the first strategy that found transactions.
type Recognition struct {
	// Strategy is empty when no strategy recognized anything.
	Strategy string
	Txs      []extraction.Tx
	// Considered is the largest candidate count seen across attempted strategies.
	Considered int
}

// ImportService orchestrates statement extraction and expense persistence
type ImportService struct {
	repo    repository.ImportRepository
	text    TextExtractor
	tables  TableSegmenter
	metrics MetricsRecorder
	opts    Options
	chain   []extraction.Strategy
	logger  *slog.Logger
}

// NewImportService creates a new import service. tables may be nil, in which
// case only the text strategies run.
func NewImportService(repo repository.ImportRepository, text TextExtractor, tables TableSegmenter, logger *slog.Logger) *ImportService {
	opts := DefaultOptions()
	return &ImportService{
		repo:   repo,
		text:   text,
		tables: tables,
		opts:   opts,
		chain:  extraction.Chain(opts.Region),
		logger: logger,
	}
}

// WithMetrics sets the recorder for import observations
func (s *ImportService) WithMetrics(m MetricsRecorder) *ImportService {
	s.metrics = m
	return s
}

// WithOptions overrides the defaults. Zero fields keep their default.
func (s *ImportService) WithOptions(o Options) *ImportService {
	def := DefaultOptions()
	if o.PreviewLines <= 0 {
		o.PreviewLines = def.PreviewLines
	}
	if o.Currency == "" {
		o.Currency = def.Currency
	}
	if o.Region == "" {
		o.Region = def.Region
	}
	if o.CategoryName == "" {
		o.CategoryName = def.CategoryName
	}
	s.opts = o
	s.chain = extraction.Chain(o.Region)
	return s
}

// Preview returns the first configured number of normalized lines of the
// document text and the total line count. No strategy runs.
func (s *ImportService) Preview(data []byte) (*Preview, error) {
	text, err := s.text.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	lines, total := normalizer.CleanLines(text, s.opts.PreviewLines)
	if lines == nil {
		lines = []string{}
	}
	return &Preview{Lines: lines, TotalLines: total}, nil
}

// LoadDocument extracts the text and per-page tables of a document. A failed
// text extraction fails the load; table segmentation failures only remove the
// affected pages from the table strategy's input.
func (s *ImportService) LoadDocument(data []byte) (extraction.Document, error) {
	text, err := s.text.ExtractText(data)
	if err != nil {
		return extraction.Document{}, fmt.Errorf("failed to extract text: %w", err)
	}
	doc := extraction.Document{Text: text}
	if s.tables == nil {
		return doc, nil
	}

	pages, err := s.tables.PageCount(data)
	if err != nil {
		s.logger.Warn("table segmentation unavailable", "error", err)
		return doc, nil
	}
	for page := 1; page <= pages; page++ {
		tables, err := s.tables.Tables(data, page)
		if err != nil {
			s.logger.Warn("table segmentation failed", slog.Int("page", page), "error", err)
			continue
		}
		doc.Pages = append(doc.Pages, tables)
	}
	return doc, nil
}

// Recognize runs the strategy chain and stops at the first strategy that
// produces transactions.
func (s *ImportService) Recognize(doc extraction.Document) Recognition {
	var rec Recognition
	for _, strategy := range s.chain {
		res := strategy.Extract(doc)
		s.logger.Debug("extraction strategy attempted",
			slog.String("strategy", strategy.Name()),
			slog.Int("transactions", len(res.Txs)),
			slog.Int("considered", res.Considered),
		)
		rec.Considered = max(rec.Considered, res.Considered)
		if len(res.Txs) > 0 {
			rec.Strategy = strategy.Name()
			rec.Txs = res.Txs
			return rec
		}
	}
	return rec
}

// Import extracts the expenses in a statement and stores them for userID.
func (s *ImportService) Import(ctx context.Context, userID uuid.UUID, data []byte) (*ImportResult, error) {
	start := time.Now()

	doc, err := s.LoadDocument(data)
	if err != nil {
		s.observe("", metrics.OutcomeError, &ImportResult{}, start)
		return nil, err
	}

	result, err := s.ImportDocument(ctx, userID, doc)
	if err != nil {
		s.observe("", metrics.OutcomeError, &ImportResult{}, start)
		return nil, err
	}

	outcome := metrics.OutcomeImported
	if result.Strategy == "" {
		outcome = metrics.OutcomeEmpty
	}
	s.observe(result.Strategy, outcome, result, start)
	return result, nil
}

// ImportDocument materializes and stores the transactions recognized in doc.
// Row-level materialization failures are reported in the result; only the
// category lookup and the final batch insert fail the whole import.
func (s *ImportService) ImportDocument(ctx context.Context, userID uuid.UUID, doc extraction.Document) (*ImportResult, error) {
	rec := s.Recognize(doc)
	result := &ImportResult{Errors: []RowError{}, Strategy: rec.Strategy}

	if len(rec.Txs) == 0 {
		result.Skipped = max(rec.Considered, 1)
		s.logger.Info("no transactions recognized",
			slog.String("user_id", userID.String()),
			slog.Int("skipped", result.Skipped),
		)
		return result, nil
	}

	categoryID, err := s.repo.GetOrCreateCategory(ctx, userID, s.opts.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default category: %w", err)
	}

	expenses := make([]*expense.Expense, 0, len(rec.Txs))
	kept := make([]extraction.Tx, 0, len(rec.Txs))
	for i, tx := range rec.Txs {
		e, err := expense.New(expense.Params{
			UserID:      userID,
			CategoryID:  categoryID,
			Description: tx.Description,
			Amount:      tx.Amount.Abs(),
			Currency:    s.opts.Currency,
			Date:        tx.Date,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Line: i + 1, Error: err.Error(), Raw: tx.Raw})
			continue
		}
		expenses = append(expenses, e)
		kept = append(kept, tx)
	}

	written, err := s.repo.BulkInsertExpenses(ctx, expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to persist expenses: %w", err)
	}
	result.Imported = len(expenses)

	attrs := []any{
		slog.String("user_id", userID.String()),
		slog.String("strategy", rec.Strategy),
		slog.Int("imported", result.Imported),
		slog.Int("failed", result.Failed),
		slog.Int("rows_written", written),
	}
	if total, err := s.Total(kept); err == nil {
		attrs = append(attrs, slog.String("total", total.Display()))
	}
	s.logger.Info("statement imported", attrs...)
	return result, nil
}

// Total sums the unsigned amounts of txs in the configured currency.
func (s *ImportService) Total(txs []extraction.Tx) (*money.Money, error) {
	amounts := make([]*money.Money, 0, len(txs))
	for _, tx := range txs {
		m, err := money.NewFromDecimal(tx.Amount.Abs(), s.opts.Currency)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, m)
	}
	return money.Sum(s.opts.Currency, amounts...)
}

func (s *ImportService) observe(strategy, outcome string, r *ImportResult, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveImport(strategy, outcome, r.Imported, r.Failed, r.Skipped, time.Since(start))
}
