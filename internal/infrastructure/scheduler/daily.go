package scheduler

import (
	"context"
	"time"

	"NewsSifter/internal/domain"
	"NewsSifter/internal/ports"
)

// DailyScheduler fires the job once per day at a fixed KST hour.
type DailyScheduler struct {
	hour int
	stop chan struct{}
}

var _ ports.Scheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler firing at the given hour of day.
func NewDailyScheduler(hour int) *DailyScheduler {
	if hour < 0 || hour > 23 {
		hour = 10
	}
	return &DailyScheduler{hour: hour}
}

// Start launches the timer goroutine.
func (d *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if d.stop != nil {
		return nil
	}

	d.stop = make(chan struct{})
	go func() {
		for {
			next := nextRun(time.Now().In(domain.Seoul), d.hour)
			timer := time.NewTimer(time.Until(next))
			select {
			case t := <-timer.C:
				job(t)
			case <-ctx.Done():
				timer.Stop()
				return
			case <-d.stop:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop halts the timer goroutine.
func (d *DailyScheduler) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	return nil
}

func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
