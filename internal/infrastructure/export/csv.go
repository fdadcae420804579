package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"html"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsSifter/internal/domain"
	"NewsSifter/internal/ports"
)

// CSVPresenter writes the final result set to a CSV file. Inline provider
// markup in titles and descriptions is stripped here; the pipeline itself
// never touches it.
type CSVPresenter struct {
	path   string
	logger *slog.Logger
}

var _ ports.Presenter = (*CSVPresenter)(nil)

// NewCSVPresenter targets the given output path.
func NewCSVPresenter(path string, logger *slog.Logger) *CSVPresenter {
	return &CSVPresenter{path: path, logger: logger}
}

// Present writes one row per item in the order the pipeline produced.
func (p *CSVPresenter) Present(ctx context.Context, result domain.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(p.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", p.path, err)
	}

	w := csv.NewWriter(f)
	header := []string{"title", "description", "link", "published_at", "source", "domain", "print_score", "total_score", "reason"}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	for _, item := range result.Items {
		if err := w.Write(toRecord(item)); err != nil {
			f.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p.path, err)
	}

	if p.logger != nil {
		p.logger.Info("results exported", "path", p.path, "count", len(result.Items), "judged", result.Judged)
	}
	return nil
}

func toRecord(item domain.NewsItem) []string {
	var printScore, totalScore, reason string
	switch {
	case item.Judgment != nil:
		printScore = formatScore(item.Judgment.PrintScore)
		totalScore = formatScore(item.Judgment.TotalScore)
		reason = item.Judgment.Reason
	case item.PrintScore != nil:
		printScore = formatScore(*item.PrintScore)
	}

	return []string{
		StripMarkup(item.Title),
		StripMarkup(item.Description),
		item.Link,
		item.PubDate,
		item.SourceName,
		item.Domain,
		printScore,
		totalScore,
		reason,
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// StripMarkup removes provider markup (<b> highlights, HTML entities) from a
// text fragment.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return html.UnescapeString(s)
	}
	return strings.TrimSpace(doc.Text())
}
