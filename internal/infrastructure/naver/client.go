package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"NewsSifter/internal/config"
	"NewsSifter/internal/domain"
	"NewsSifter/internal/ports"
)

const pageSize = 100

// Client calls the Naver news search API. Pagination stops at a short page;
// a fixed delay between requests respects the provider rate limit.
type Client struct {
	endpoint     string
	clientID     string
	clientSecret string
	delay        time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ ports.SearchSource = (*Client)(nil)

// NewClient wires credentials and the request pacing from configuration.
func NewClient(cfg config.NaverConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint:     cfg.Endpoint,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		delay:        time.Duration(cfg.DelayMS) * time.Millisecond,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// Search runs every query with pagination and accumulates a flat list. A
// failing query is logged and skipped so the pipeline continues with what
// was already gathered; an error is returned only when nothing at all could
// be fetched.
func (c *Client) Search(ctx context.Context, queries []string, maxPages int) ([]domain.NewsItem, error) {
	if maxPages <= 0 {
		maxPages = 1
	}

	var accumulated []domain.NewsItem
	var lastErr error
	first := true
	for _, query := range queries {
		for page := 0; page < maxPages; page++ {
			if !first {
				if err := c.pause(ctx); err != nil {
					return accumulated, err
				}
			}
			first = false

			items, err := c.searchPage(ctx, query, page*pageSize+1)
			if err != nil {
				lastErr = err
				c.log("search query failed", "query", query, "error", err)
				break
			}

			accumulated = append(accumulated, items...)
			if len(items) < pageSize {
				break // short page means last page
			}
		}
	}

	if len(accumulated) == 0 && lastErr != nil {
		return nil, fmt.Errorf("naver search: %w", lastErr)
	}
	return accumulated, nil
}

func (c *Client) searchPage(ctx context.Context, query string, start int) ([]domain.NewsItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(pageSize))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", "sim")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver returned %s", resp.Status)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(parsed.Items))
	for _, raw := range parsed.Items {
		items = append(items, domain.NewsItem{
			Title:       raw.Title,
			Description: raw.Description,
			Link:        raw.Link,
			PubDate:     raw.PubDate,
		})
	}
	return items, nil
}

func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}

func (c *Client) log(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

type searchResponse struct {
	Total int          `json:"total"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
}
