package feeds

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// Some feed hosts block default Go user agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	maxBodyBytes    = 5 << 20
	maxSummaryRunes = 300
	minTitleLength  = 4
)

type Options struct {
	MaxArticlesPerFeed int
	DefaultTimeout     time.Duration
	TimeoutOverrides   map[string]time.Duration
	RateLimitDelay     time.Duration
}

// Ingestor fetches configured feeds sequentially over one pooled HTTP
// client. Per-feed failures are tallied, never raised.
type Ingestor struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	policy     *bluemonday.Policy
	opts       Options
	sleep      func(time.Duration)
}

func NewIngestor(opts Options) *Ingestor {
	if opts.MaxArticlesPerFeed <= 0 {
		opts.MaxArticlesPerFeed = 5
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 15 * time.Second
	}
	return &Ingestor{
		httpClient: &http.Client{},
		parser:     gofeed.NewParser(),
		policy:     bluemonday.StrictPolicy(),
		opts:       opts,
		sleep:      time.Sleep,
	}
}

// FetchAll fetches every enabled source in configuration order and returns
// the combined articles plus a per-feed tally. A disabled source is never
// requested. One feed's failure does not abort the batch.
func (in *Ingestor) FetchAll(ctx context.Context, sources []Source) ([]Article, Tally) {
	var (
		articles []Article
		tally    Tally
		fetched  int
	)

	for _, src := range sources {
		if !src.Enabled {
			continue
		}

		if fetched > 0 && in.opts.RateLimitDelay > 0 {
			in.sleep(in.opts.RateLimitDelay)
		}
		fetched++

		got, err := in.fetchOne(ctx, src)
		if err != nil {
			slog.Error("feed fetch failed", "source", src.Name, "error", err)
			tally.Failed++
			tally.Statuses = append(tally.Statuses, FeedStatus{Source: src.Name, Err: err})
			continue
		}

		slog.Info("feed fetched", "source", src.Name, "articles", len(got))
		tally.Succeeded++
		tally.Statuses = append(tally.Statuses, FeedStatus{Source: src.Name, Articles: len(got)})
		articles = append(articles, got...)
	}

	return articles, tally
}

func (in *Ingestor) fetchOne(ctx context.Context, src Source) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, in.timeoutFor(src.Name))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml;q=0.9, */*;q=0.8")

	resp, err := in.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	feed, err := in.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]Article, 0, in.opts.MaxArticlesPerFeed)
	for _, item := range feed.Items {
		if len(articles) >= in.opts.MaxArticlesPerFeed {
			break
		}

		title := strings.TrimSpace(item.Title)
		if len(title) < minTitleLength {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		a := Article{
			Title:    title,
			Link:     strings.TrimSpace(item.Link),
			Summary:  in.cleanSummary(summary),
			Source:   src.Name,
			Category: src.Category,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			a.PublishedAt = *item.UpdatedParsed
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (in *Ingestor) timeoutFor(name string) time.Duration {
	if d, ok := in.opts.TimeoutOverrides[name]; ok && d > 0 {
		return d
	}
	return in.opts.DefaultTimeout
}

// cleanSummary strips markup from a feed entry description and truncates it
// for the report.
func (in *Ingestor) cleanSummary(raw string) string {
	text := in.policy.Sanitize(raw)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxSummaryRunes {
		text = string(runes[:maxSummaryRunes]) + "..."
	}
	return text
}
