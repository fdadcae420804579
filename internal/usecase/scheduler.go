package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsSifter/internal/domain"
	"NewsSifter/internal/ports"
)

// Scheduler wires the daily driver with the pipeline use case. Each trigger
// runs the pipeline over the default window around the trigger time.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	base     Params
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, base Params, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, base: base, logger: logger}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		params := s.base
		params.Window = domain.DefaultWindow(trigger)
		if _, err := s.pipeline.Run(ctx, params); err != nil {
			if s.logger != nil {
				s.logger.Error("scheduled run failed", "error", err)
			}
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
