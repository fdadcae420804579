package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"NewsSifter/internal/domain"
	"NewsSifter/internal/ports"
)

// Mode selects the classification strategy.
type Mode string

const (
	// ModeScalar expects a bare print-likelihood number per item.
	ModeScalar Mode = "scalar"
	// ModePanel expects the multi-field structured verdict per item.
	ModePanel Mode = "panel"
)

// ErrOutage reports that the oracle could not be reached for any item;
// callers fall back to the unclassified result set.
var ErrOutage = errors.New("judge: classifier unavailable")

// Options tune the shared judging loop.
type Options struct {
	Mode      Mode
	Threshold float64
	Delay     time.Duration // minimum pause between oracle calls
}

// Judge filters news items through the print-edition classifier oracle. Both
// strategies share the same sequencing, rate limiting, and per-item failure
// handling; they differ only in prompts, response parsing, and the retention
// predicate.
type Judge struct {
	oracle   ports.ChatCompleter
	opts     Options
	strategy strategy
	logger   *slog.Logger
}

// strategy isolates what differs between the two classifier variants.
type strategy interface {
	prompts(item domain.NewsItem) (system, user string)
	judge(item *domain.NewsItem, response string, threshold float64) (keep bool, err error)
}

// New builds a judge for the given mode; an empty mode defaults to scalar.
func New(oracle ports.ChatCompleter, opts Options, logger *slog.Logger) (*Judge, error) {
	var s strategy
	switch opts.Mode {
	case ModeScalar, "":
		opts.Mode = ModeScalar
		s = scalarStrategy{}
	case ModePanel:
		s = panelStrategy{}
	default:
		return nil, fmt.Errorf("judge: unknown mode %q", opts.Mode)
	}
	return &Judge{oracle: oracle, opts: opts, strategy: s, logger: logger}, nil
}

// Mode reports the active classification strategy.
func (j *Judge) Mode() Mode {
	return j.opts.Mode
}

// Filter judges each item sequentially and returns the retained subset in
// input order. Failures are per item and never abort the remaining items;
// ErrOutage is returned only when no oracle request completed at all.
func (j *Judge) Filter(ctx context.Context, items []domain.NewsItem) ([]domain.NewsItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	kept := make([]domain.NewsItem, 0, len(items))
	var completed, unreachable int
	for i := range items {
		if i > 0 && j.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(j.opts.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := items[i]
		system, user := j.strategy.prompts(item)
		response, err := j.oracle.Complete(ctx, system, user)
		if err != nil {
			unreachable++
			j.log("classification request failed", "link", item.Link, "error", err)
			continue
		}
		completed++

		keep, err := j.strategy.judge(&item, response, j.opts.Threshold)
		if err != nil {
			j.log("classification response rejected", "link", item.Link, "error", err)
			continue
		}
		if keep {
			kept = append(kept, item)
		}
	}

	if completed == 0 && unreachable > 0 {
		return nil, ErrOutage
	}
	return kept, nil
}

func (j *Judge) log(msg string, args ...any) {
	if j.logger != nil {
		j.logger.Warn(msg, args...)
	}
}
