package app

import (
	"context"
	"log/slog"
	"time"

	"NewsSifter/internal/config"
	"NewsSifter/internal/domain"
	"NewsSifter/internal/filter"
	"NewsSifter/internal/infrastructure/export"
	"NewsSifter/internal/infrastructure/llm"
	"NewsSifter/internal/infrastructure/naver"
	"NewsSifter/internal/infrastructure/scheduler"
	"NewsSifter/internal/judge"
	"NewsSifter/internal/logging"
	"NewsSifter/internal/resolve"
	"NewsSifter/internal/usecase"
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	resolver := resolve.New(toSources(cfg.Sources), cfg.TrustOrder)
	chain := filter.NewChain(resolver, cfg.NegativeKeywords)
	source := naver.NewClient(cfg.Naver, baseLogger.With("component", "naver"))
	presenter := export.NewCSVPresenter(cfg.Export.Path, baseLogger.With("component", "export"))

	var j *judge.Judge
	if cfg.Judge.Enabled {
		oracle := llm.NewChatGPTClient(cfg.ChatGPT)
		opts := judge.Options{
			Mode:      judge.Mode(cfg.Judge.Mode),
			Threshold: cfg.Judge.Threshold,
			Delay:     time.Duration(cfg.Judge.DelayMS) * time.Millisecond,
		}
		var err error
		j, err = judge.New(oracle, opts, baseLogger.With("component", "judge"))
		if err != nil {
			baseLogger.Warn("judge disabled", "error", err)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:      source,
		Resolver:    resolver,
		Chain:       chain,
		Judge:       j,
		Presenter:   presenter,
		Categories:  cfg.Categories,
		MaxKeywords: cfg.Search.MaxKeywordsPerCategory,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}
}

// Run performs a single collection pass over the default window, or keeps
// running daily when the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	params := usecase.Params{
		Window:   domain.DefaultWindow(time.Now()),
		MaxPages: a.cfg.Search.MaxPages,
	}

	if !a.cfg.Scheduler.Enabled {
		_, err := a.pipeline.Run(ctx, params)
		return err
	}

	driver := scheduler.NewDailyScheduler(a.cfg.Scheduler.Hour)
	sched := usecase.NewScheduler(driver, a.pipeline, params, a.logger.With("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return sched.Stop(context.Background())
}

func toSources(cfg []config.SourceConfig) []resolve.Source {
	sources := make([]resolve.Source, 0, len(cfg))
	for _, src := range cfg {
		sources = append(sources, resolve.Source{Name: src.Name, Domain: src.Domain})
	}
	return sources
}
