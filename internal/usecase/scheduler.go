package usecase

import (
	"context"
	"log/slog"
	"time"

	"ArticleForge/internal/ports"
)

// Scheduler wires the interval driver to recurring pipeline runs.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	hints    []string
	logger   *slog.Logger
	next     int
}

// NewScheduler returns a helper that generates one article per tick,
// rotating through the configured topic hints.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, hints []string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, pipeline: pipeline, hints: hints, logger: logger}
}

// Start registers the generation job with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil || len(s.hints) == 0 {
		return nil
	}

	job := func(trigger time.Time) {
		hint := s.hints[s.next%len(s.hints)]
		s.next++

		s.logger.Info("scheduled generation run", "hint", hint, "trigger", trigger)
		if _, err := s.pipeline.RunFromQuery(ctx, hint); err != nil {
			s.logger.Error("scheduled run failed", "hint", hint, "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
