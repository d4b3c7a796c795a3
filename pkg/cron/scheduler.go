// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPruneSchedule runs the archive pruning daily at 3:00 AM.
const DefaultPruneSchedule = "0 3 * * *"

// Pruner deletes archived statements created before cutoff.
type Pruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	pruner    Pruner
	retention time.Duration
	schedule  string
	now       func() time.Time
	logger    *slog.Logger
}

// NewScheduler creates a job scheduler that prunes archived statements older
// than retention on the given cron schedule.
func NewScheduler(pruner Pruner, retention time.Duration, schedule string, logger *slog.Logger) *Scheduler {
	// Standard 5-field format, seconds disabled
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}

	return &Scheduler{
		cron:      c,
		pruner:    pruner,
		retention: retention,
		schedule:  schedule,
		now:       time.Now,
		logger:    logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.pruneArchive); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
		slog.String("prune_schedule", s.schedule),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow triggers the archive pruning synchronously.
func (s *Scheduler) RunNow() {
	s.pruneArchive()
}

func (s *Scheduler) pruneArchive() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cutoff := s.now().Add(-s.retention)
	removed, err := s.pruner.Prune(ctx, cutoff)
	if err != nil {
		s.logger.Warn("archive pruning finished with errors",
			slog.Int("files_removed", removed),
			slog.Any("error", err),
		)
		return
	}

	s.logger.Info("archive pruning completed",
		slog.Time("cutoff", cutoff),
		slog.Int("files_removed", removed),
	)
}
