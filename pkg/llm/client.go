package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/feeds"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/market"
)

const (
	BasicProviderName = "basic"
	basicStoryLimit   = 5
)

type Story struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}

type Analysis struct {
	MarketStories  []Story `json:"market_stories"`
	GeneralStories []Story `json:"general_stories"`
	Outlook        string  `json:"outlook"`

	Usage *TokenUsage `json:"-"`
}

// Result is the single analysis produced per run, attributed to whichever
// provider succeeded first.
type Result struct {
	Provider string
	Analysis Analysis
	Basic    bool
}

type Provider interface {
	Name() string
	Analyze(ctx context.Context, prompt string) (*Analysis, error)
}

// Client tries an ordered list of providers and falls back to a
// deterministic basic analysis when every provider fails. Fail-fast per
// provider, fail-open overall: the run never aborts for lack of AI
// availability.
type Client struct {
	providers []Provider
	timeout   time.Duration
	now       func() time.Time
}

func NewClient(providers []Provider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		providers: providers,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Analyze returns exactly one Result. Providers are tried in order; the
// first well-formed structured response wins and later providers are never
// invoked.
func (c *Client) Analyze(ctx context.Context, articles []feeds.Article, quotes []market.Quote) *Result {
	prompt := BuildPrompt(articles, quotes, c.now())

	for _, p := range c.providers {
		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		analysis, err := p.Analyze(pctx, prompt)
		cancel()

		if err != nil {
			slog.Warn("AI provider failed", "provider", p.Name(), "error", err)
			continue
		}

		slog.Info("analysis generated", "provider", p.Name())
		return &Result{Provider: p.Name(), Analysis: *analysis}
	}

	slog.Warn("all AI providers failed, generating basic analysis")
	return &Result{
		Provider: BasicProviderName,
		Analysis: basicAnalysis(articles, quotes, c.now()),
		Basic:    true,
	}
}

// basicAnalysis builds a non-AI summary by a fixed rule: the first five
// articles from market-category feeds and the first five from everything
// else, in feed-configuration then document order.
func basicAnalysis(articles []feeds.Article, quotes []market.Quote, now time.Time) Analysis {
	var marketStories, generalStories []Story

	for _, a := range articles {
		story := Story{Headline: a.Title, Summary: a.Summary}
		if strings.EqualFold(a.Category, "markets") {
			if len(marketStories) < basicStoryLimit {
				marketStories = append(marketStories, story)
			}
			continue
		}
		if len(generalStories) < basicStoryLimit {
			generalStories = append(generalStories, story)
		}
	}

	outlook := fmt.Sprintf(
		"AI analysis was unavailable for this run. %d articles and %d quotes were collected on %s. Monitor upcoming economic data releases and corporate earnings reports.",
		len(articles), len(quotes), now.Format("January 2, 2006"),
	)

	return Analysis{
		MarketStories:  marketStories,
		GeneralStories: generalStories,
		Outlook:        outlook,
	}
}

// parseAnalysis decodes a provider response into the structured analysis.
// Malformed JSON or an empty analysis counts as a provider failure.
func parseAnalysis(content string) (*Analysis, error) {
	content = cleanJSONResponse(content)

	var a Analysis
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if len(a.MarketStories) == 0 && len(a.GeneralStories) == 0 && a.Outlook == "" {
		return nil, fmt.Errorf("empty analysis response")
	}

	return &a, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
