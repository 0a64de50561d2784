package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"nytviewer/internal/repository"
)

const refreshTimeout = 2 * time.Minute

// Refresher runs repository actions.
type Refresher interface {
	Execute(ctx context.Context, action repository.Action) error
}

// Scheduler refreshes the section list and the selected article list on a
// fixed interval. The first refresh happens one interval after Start.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	logger    *slog.Logger
}

func NewScheduler(refresher Refresher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runRefresh(ctx)
		}
	}
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	start := time.Now()

	// a failed section refresh must not cancel the article refresh
	var g errgroup.Group
	g.Go(func() error {
		return s.refresher.Execute(refreshCtx, repository.RefreshSections{})
	})
	g.Go(func() error {
		return s.refresher.Execute(refreshCtx, repository.RefreshArticles{})
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("refresh failed", "error", err)
		return
	}

	s.logger.Debug("refresh completed", "duration", time.Since(start))
}
