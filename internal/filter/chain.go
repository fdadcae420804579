package filter

import (
	"strings"

	"golang.org/x/text/width"

	"NewsSifter/internal/domain"
	"NewsSifter/internal/resolve"
)

// Chain applies the content filters in a fixed order: allow-listed source,
// time window, negative keywords. Each stage runs over the survivors of the
// previous one and never mutates an item.
type Chain struct {
	resolver         *resolve.Resolver
	negativeKeywords []string
}

// NewChain prepares the chain; negative keywords are folded and lower-cased
// once up front.
func NewChain(resolver *resolve.Resolver, negativeKeywords []string) *Chain {
	prepared := make([]string, 0, len(negativeKeywords))
	for _, kw := range negativeKeywords {
		kw = strings.ToLower(width.Fold.String(strings.TrimSpace(kw)))
		if kw != "" {
			prepared = append(prepared, kw)
		}
	}
	return &Chain{resolver: resolver, negativeKeywords: prepared}
}

// Apply runs all three filters. An empty input, or an empty survivor set at
// any stage, returns immediately.
func (c *Chain) Apply(items []domain.NewsItem, window domain.TimeWindow) []domain.NewsItem {
	items = c.bySource(items)
	items = c.byWindow(items, window)
	return c.byNegativeKeywords(items)
}

func (c *Chain) bySource(items []domain.NewsItem) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}
	kept := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}
		if c.resolver.Allowed(item.Link) {
			kept = append(kept, item)
		}
	}
	return kept
}

func (c *Chain) byWindow(items []domain.NewsItem, window domain.TimeWindow) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}
	kept := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		published, err := domain.ParsePubDate(item.PubDate)
		if err != nil {
			continue // unparsable timestamps are outside any window
		}
		if window.Contains(published) {
			kept = append(kept, item)
		}
	}
	return kept
}

func (c *Chain) byNegativeKeywords(items []domain.NewsItem) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}
	kept := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		text := strings.ToLower(width.Fold.String(item.Title + " " + item.Description))
		if containsAny(text, c.negativeKeywords) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
