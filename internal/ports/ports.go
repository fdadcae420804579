package ports

import (
	"context"
	"time"

	"NewsSifter/internal/domain"
)

// SearchSource pulls raw news items from the upstream search provider. A
// transport failure after partial accumulation returns what was gathered.
type SearchSource interface {
	Search(ctx context.Context, queries []string, maxPages int) ([]domain.NewsItem, error)
}

// ChatCompleter issues one natural-language judgment request and returns the
// model's raw text response.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Presenter receives the final ordered result set; all formatting and export
// concerns live behind it.
type Presenter interface {
	Present(ctx context.Context, result domain.Result) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
