package dedupe

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/width"

	"NewsSifter/internal/domain"
)

// DropDuplicateLinks removes exact-link duplicates, keeping the last-arriving
// copy of each distinct non-empty link. The relative order of survivors is
// the original arrival order. Items with an empty link never dedupe against
// each other; each one is kept.
func DropDuplicateLinks(items []domain.NewsItem) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	keep := make([]bool, len(items))
	// walk in reverse arrival order so the last-arriving copy survives
	for i := len(items) - 1; i >= 0; i-- {
		link := items[i].Link
		if link == "" {
			keep[i] = true
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		keep[i] = true
	}

	kept := make([]domain.NewsItem, 0, len(items))
	for i, item := range items {
		if keep[i] {
			kept = append(kept, item)
		}
	}
	return kept
}

// SortByPubDate orders items by publication time, most recent first. The
// sort is stable; items whose timestamp fails to parse sink to the end in
// their original relative order rather than being dropped.
func SortByPubDate(items []domain.NewsItem) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}

	type keyed struct {
		item   domain.NewsItem
		at     time.Time
		parsed bool
	}
	keys := make([]keyed, 0, len(items))
	for _, item := range items {
		at, err := domain.ParsePubDate(item.PubDate)
		keys = append(keys, keyed{item: item, at: at, parsed: err == nil})
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].parsed != keys[j].parsed {
			return keys[i].parsed
		}
		if !keys[i].parsed {
			return false
		}
		return keys[i].at.After(keys[j].at)
	})

	sorted := make([]domain.NewsItem, 0, len(keys))
	for _, k := range keys {
		sorted = append(sorted, k.item)
	}
	return sorted
}

// NormalizeTitle produces the near-duplicate grouping key: full-width forms
// folded, lower-cased, punctuation stripped, whitespace collapsed to single
// spaces, surrounding whitespace trimmed.
func NormalizeTitle(title string) string {
	folded := strings.ToLower(width.Fold.String(title))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
		// punctuation and symbols are dropped entirely
	}
	return b.String()
}

// TrustRanker supplies the publisher trust term of the selection score.
type TrustRanker interface {
	Rank(sourceName string) (rank, max int)
}

// CollapseNearDuplicates groups items by normalized title and keeps exactly
// one representative per group, selected by a weighted score over print
// likelihood, overall judgment score, and publisher trust. Ties keep the
// first-seen item. Items without a normalized, non-empty title are never
// grouped. Survivors keep their original relative order.
func CollapseNearDuplicates(items []domain.NewsItem, trust TrustRanker) []domain.NewsItem {
	if len(items) == 0 {
		return nil
	}

	type group struct {
		bestIdx   int
		bestScore float64
	}
	groups := make(map[string]*group, len(items))
	keep := make([]bool, len(items))

	for i, item := range items {
		key := NormalizeTitle(item.Title)
		if key == "" {
			keep[i] = true
			continue
		}

		score := selectionScore(item, trust)
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{bestIdx: i, bestScore: score}
			keep[i] = true
			continue
		}
		if score > g.bestScore {
			keep[g.bestIdx] = false
			keep[i] = true
			g.bestIdx = i
			g.bestScore = score
		}
	}

	kept := make([]domain.NewsItem, 0, len(items))
	for i, item := range items {
		if keep[i] {
			kept = append(kept, item)
		}
	}
	return kept
}

// selectionScore weighs print likelihood 60%, overall judgment 30%, and
// publisher trust 10%.
func selectionScore(item domain.NewsItem, trust TrustRanker) float64 {
	var printScore, totalScore float64
	switch {
	case item.Judgment != nil:
		printScore = item.Judgment.PrintScore
		totalScore = item.Judgment.TotalScore
	case item.PrintScore != nil:
		printScore = *item.PrintScore
	}

	var trustScore float64
	if trust != nil {
		if rank, max := trust.Rank(item.SourceName); max > 0 {
			trustScore = float64(rank) / float64(max)
		}
	}

	return 0.6*printScore + 0.3*totalScore + 0.1*trustScore
}
