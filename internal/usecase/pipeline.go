package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsSifter/internal/config"
	"NewsSifter/internal/dedupe"
	"NewsSifter/internal/domain"
	"NewsSifter/internal/filter"
	"NewsSifter/internal/judge"
	"NewsSifter/internal/ports"
	"NewsSifter/internal/resolve"
)

// PipelineDeps wires all collaborators into the orchestration pipeline.
type PipelineDeps struct {
	Source      ports.SearchSource
	Resolver    *resolve.Resolver
	Chain       *filter.Chain
	Judge       *judge.Judge // nil disables classification
	Presenter   ports.Presenter
	Categories  []config.CategoryConfig
	MaxKeywords int
	Logger      *slog.Logger
}

// Params bounds a single pipeline run.
type Params struct {
	Categories []string // empty selects every configured category
	Window     domain.TimeWindow
	MaxPages   int
}

// Pipeline sequences search, filtering, dedupe, classification, and
// presentation. It is the only component aware of every stage.
type Pipeline struct {
	source      ports.SearchSource
	resolver    *resolve.Resolver
	chain       *filter.Chain
	judge       *judge.Judge
	presenter   ports.Presenter
	categories  []config.CategoryConfig
	maxKeywords int
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	maxKeywords := deps.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = 8
	}
	return &Pipeline{
		source:      deps.Source,
		resolver:    deps.Resolver,
		chain:       deps.Chain,
		judge:       deps.Judge,
		presenter:   deps.Presenter,
		categories:  deps.Categories,
		maxKeywords: maxKeywords,
		logger:      deps.Logger,
	}
}

// Run executes one full pass. Any stage yielding nothing short-circuits to
// an empty result; a classifier outage falls back to the pre-classification
// set instead of failing the run.
func (p *Pipeline) Run(ctx context.Context, params Params) (domain.Result, error) {
	queries := p.buildQueries(params.Categories)
	result := domain.Result{Queries: queries, Window: params.Window}
	if len(queries) == 0 {
		p.log().Warn("no search queries configured")
		return result, nil
	}

	raw, err := p.source.Search(ctx, queries, params.MaxPages)
	if err != nil {
		return result, fmt.Errorf("search news: %w", err)
	}
	p.log().Info("search complete", "queries", len(queries), "items", len(raw))

	items := p.chain.Apply(raw, params.Window)
	p.log().Info("filters applied", "survivors", len(items))

	if len(items) > 0 {
		for i := range items {
			items[i].SourceName, items[i].Domain = p.resolver.Resolve(items[i].Link)
		}
		items = dedupe.DropDuplicateLinks(items)
		items = dedupe.SortByPubDate(items)
		p.log().Info("dedupe complete", "survivors", len(items))
	}

	if p.judge != nil && len(items) > 0 {
		judged, err := p.judge.Filter(ctx, items)
		switch {
		case errors.Is(err, judge.ErrOutage):
			p.log().Warn("classifier unavailable, keeping unclassified results")
		case err != nil:
			return result, fmt.Errorf("classify news: %w", err)
		default:
			items = judged
			result.Judged = true
			if p.judge.Mode() == judge.ModePanel {
				items = dedupe.CollapseNearDuplicates(items, p.resolver)
			}
			p.log().Info("classification complete", "survivors", len(items))
		}
	}

	result.Items = items
	if p.presenter != nil {
		if err := p.presenter.Present(ctx, result); err != nil {
			return result, fmt.Errorf("present results: %w", err)
		}
	}

	return result, nil
}

// buildQueries expands the selected categories into quoted
// category+keyword provider queries, honoring the per-category keyword cap.
func (p *Pipeline) buildQueries(selected []string) []string {
	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}

	var queries []string
	for _, cat := range p.categories {
		if len(wanted) > 0 && !wanted[cat.Name] {
			continue
		}
		keywords := cat.Keywords
		if len(keywords) > p.maxKeywords {
			keywords = keywords[:p.maxKeywords]
		}
		for _, kw := range keywords {
			queries = append(queries, fmt.Sprintf(`"%s" "%s"`, cat.Name, kw))
		}
	}
	return queries
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}
	return p.logger
}
