package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"NewsSifter/internal/config"
	"NewsSifter/internal/domain"
	"NewsSifter/internal/filter"
	"NewsSifter/internal/judge"
	"NewsSifter/internal/resolve"
)

type fakeSource struct {
	items []domain.NewsItem
	err   error
	got   []string
}

func (f *fakeSource) Search(ctx context.Context, queries []string, maxPages int) ([]domain.NewsItem, error) {
	f.got = queries
	return f.items, f.err
}

type fakeOracle struct {
	responses map[string]string
	err       error
}

func (f *fakeOracle) Complete(ctx context.Context, system, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for title, response := range f.responses {
		if strings.Contains(user, title) {
			return response, nil
		}
	}
	return "", fmt.Errorf("no canned response")
}

type capturePresenter struct {
	result *domain.Result
}

func (c *capturePresenter) Present(ctx context.Context, result domain.Result) error {
	c.result = &result
	return nil
}

func testResolver() *resolve.Resolver {
	return resolve.New([]resolve.Source{
		{Name: "조선일보", Domain: "chosun.com"},
		{Name: "한국경제", Domain: "hankyung.com"},
	}, []string{"조선일보", "한국경제"})
}

func testWindow() domain.TimeWindow {
	return domain.TimeWindow{
		Start: time.Date(2023, time.December, 17, 10, 0, 0, 0, domain.Seoul),
		End:   time.Date(2023, time.December, 18, 10, 0, 0, 0, domain.Seoul),
	}
}

func panelVerdict(print, utility, total float64) string {
	return fmt.Sprintf("지면가능성: %.1f\n실용성: %.1f\n종합점수: %.1f\n포함여부: 예\n이유: 테스트", print, utility, total)
}

// 6 raw items: two near-duplicate pairs, one negative-keyword item, one item
// outside the window. The contracts compose to exactly 2 final items.
func TestPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	raw := []domain.NewsItem{
		{Title: "삼성전자, AI 반도체 시장 진출 선언", Link: "https://www.chosun.com/1", PubDate: "Mon, 18 Dec 2023 01:30:00 +0900"},
		{Title: "삼성전자 AI 반도체 시장 진출 선언", Link: "https://www.hankyung.com/2", PubDate: "Mon, 18 Dec 2023 02:00:00 +0900"},
		{Title: "BTS 지민, 새 앨범 발매 예고", Link: "https://www.chosun.com/3", PubDate: "Mon, 18 Dec 2023 03:00:00 +0900"},
		{Title: "글로벌 금융위기, 우려 확산", Link: "https://www.chosun.com/4", PubDate: "Sun, 17 Dec 2023 22:00:00 +0900"},
		{Title: "글로벌 금융위기 우려 확산", Link: "https://www.hankyung.com/5", PubDate: "Sun, 17 Dec 2023 23:00:00 +0900"},
		{Title: "지난주 실적 기사", Link: "https://www.chosun.com/6", PubDate: "Fri, 15 Dec 2023 09:00:00 +0900"},
	}

	oracle := &fakeOracle{responses: map[string]string{
		"삼성전자, AI 반도체 시장 진출 선언": panelVerdict(0.9, 0.8, 0.8),
		"삼성전자 AI 반도체 시장 진출 선언":  panelVerdict(0.5, 0.6, 0.6),
		"글로벌 금융위기, 우려 확산":       panelVerdict(0.6, 0.7, 0.7),
		"글로벌 금융위기 우려 확산":        panelVerdict(0.8, 0.9, 0.9),
	}}
	j, err := judge.New(oracle, judge.Options{Mode: judge.ModePanel, Threshold: 0.5}, nil)
	if err != nil {
		t.Fatalf("judge.New: %v", err)
	}

	resolver := testResolver()
	source := &fakeSource{items: raw}
	presenter := &capturePresenter{}
	pipeline := NewPipeline(PipelineDeps{
		Source:     source,
		Resolver:   resolver,
		Chain:      filter.NewChain(resolver, []string{"BTS"}),
		Judge:      j,
		Presenter:  presenter,
		Categories: []config.CategoryConfig{{Name: "산업동향", Keywords: []string{"반도체"}}},
	})

	result, err := pipeline.Run(context.Background(), Params{Window: testWindow(), MaxPages: 1})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(source.got) != 1 || source.got[0] != `"산업동향" "반도체"` {
		t.Fatalf("unexpected queries: %v", source.got)
	}
	if !result.Judged {
		t.Fatal("result should be marked judged")
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 final items, got %d: %+v", len(result.Items), result.Items)
	}

	// sorted by pubDate descending, then collapsed: the 삼성전자 group keeps
	// the higher-scoring 조선일보 copy, the 금융위기 group the 한국경제 copy
	if result.Items[0].Link != "https://www.chosun.com/1" {
		t.Errorf("unexpected first item: %s", result.Items[0].Link)
	}
	if result.Items[1].Link != "https://www.hankyung.com/5" {
		t.Errorf("unexpected second item: %s", result.Items[1].Link)
	}

	// enrichment happened in place
	if result.Items[0].SourceName != "조선일보" || result.Items[0].Domain != "chosun.com" {
		t.Errorf("source not resolved: %+v", result.Items[0])
	}
	if presenter.result == nil || len(presenter.result.Items) != 2 {
		t.Error("presenter did not receive the final result")
	}
}

func TestPipelineClassifierOutageFallsBack(t *testing.T) {
	t.Parallel()

	raw := []domain.NewsItem{
		{Title: "실적 발표", Link: "https://www.chosun.com/1", PubDate: "Mon, 18 Dec 2023 01:30:00 +0900"},
		{Title: "금리 전망", Link: "https://www.hankyung.com/2", PubDate: "Mon, 18 Dec 2023 02:00:00 +0900"},
	}

	j, err := judge.New(&fakeOracle{err: errors.New("connection refused")}, judge.Options{Mode: judge.ModeScalar, Threshold: 0.5}, nil)
	if err != nil {
		t.Fatalf("judge.New: %v", err)
	}

	resolver := testResolver()
	pipeline := NewPipeline(PipelineDeps{
		Source:     &fakeSource{items: raw},
		Resolver:   resolver,
		Chain:      filter.NewChain(resolver, nil),
		Judge:      j,
		Categories: []config.CategoryConfig{{Name: "재무", Keywords: []string{"실적"}}},
	})

	result, err := pipeline.Run(context.Background(), Params{Window: testWindow(), MaxPages: 1})
	if err != nil {
		t.Fatalf("outage must not fail the run: %v", err)
	}
	if result.Judged {
		t.Error("fallback result must not be marked judged")
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected the pre-classification set, got %d items", len(result.Items))
	}
}

func TestPipelineEmptySearchShortCircuits(t *testing.T) {
	t.Parallel()

	resolver := testResolver()
	presenter := &capturePresenter{}
	pipeline := NewPipeline(PipelineDeps{
		Source:     &fakeSource{},
		Resolver:   resolver,
		Chain:      filter.NewChain(resolver, nil),
		Presenter:  presenter,
		Categories: []config.CategoryConfig{{Name: "재무", Keywords: []string{"실적"}}},
	})

	result, err := pipeline.Run(context.Background(), Params{Window: testWindow(), MaxPages: 1})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty result, got %d items", len(result.Items))
	}
	if presenter.result == nil {
		t.Error("even an empty result reaches the presenter")
	}
}

func TestPipelineSearchFailure(t *testing.T) {
	t.Parallel()

	resolver := testResolver()
	pipeline := NewPipeline(PipelineDeps{
		Source:     &fakeSource{err: errors.New("quota exceeded")},
		Resolver:   resolver,
		Chain:      filter.NewChain(resolver, nil),
		Categories: []config.CategoryConfig{{Name: "재무", Keywords: []string{"실적"}}},
	})

	if _, err := pipeline.Run(context.Background(), Params{Window: testWindow(), MaxPages: 1}); err == nil {
		t.Fatal("total search failure must surface an error")
	}
}

func TestBuildQueriesHonorsSelectionAndCap(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Categories: []config.CategoryConfig{
			{Name: "재무", Keywords: []string{"실적발표", "배당", "회사채"}},
			{Name: "세무", Keywords: []string{"법인세"}},
		},
		MaxKeywords: 2,
	})

	queries := pipeline.buildQueries([]string{"재무"})
	want := []string{`"재무" "실적발표"`, `"재무" "배당"`}
	if len(queries) != len(want) {
		t.Fatalf("got %v, want %v", queries, want)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Fatalf("got %v, want %v", queries, want)
		}
	}

	// empty selection expands every category
	if got := pipeline.buildQueries(nil); len(got) != 3 {
		t.Fatalf("expected 3 queries for all categories, got %d", len(got))
	}
}
