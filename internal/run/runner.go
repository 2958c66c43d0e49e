package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsnider89/AI-Market-Aggregator-New/internal/config"
	"github.com/jsnider89/AI-Market-Aggregator-New/internal/report"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/feeds"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/llm"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/market"
)

type Ingestor interface {
	FetchAll(ctx context.Context, sources []feeds.Source) ([]feeds.Article, feeds.Tally)
}

type Analyzer interface {
	Analyze(ctx context.Context, articles []feeds.Article, quotes []market.Quote) *llm.Result
}

// Runner sequences one complete execution: ingest feeds, fetch quotes,
// analyze, render, deliver. Single-shot; a delivery failure is recorded in
// the metrics, never retried.
type Runner struct {
	doc      *config.FeedDocument
	ingestor Ingestor
	quotes   market.QuoteFetcher
	analyst  Analyzer
	reporter *report.Generator
	sender   report.Sender
	now      func() time.Time
}

func New(doc *config.FeedDocument, ingestor Ingestor, quotes market.QuoteFetcher, analyst Analyzer, reporter *report.Generator, sender report.Sender) *Runner {
	return &Runner{
		doc:      doc,
		ingestor: ingestor,
		quotes:   quotes,
		analyst:  analyst,
		reporter: reporter,
		sender:   sender,
		now:      time.Now,
	}
}

func (r *Runner) Run(ctx context.Context) (*Metrics, error) {
	start := r.now()
	m := &Metrics{RunID: uuid.NewString(), StartedAt: start}
	defer func() {
		m.Duration = r.now().Sub(start)
		m.Log()
	}()

	articles, tally := r.ingestor.FetchAll(ctx, r.doc.RSSFeeds)
	m.ArticlesProcessed = len(articles)
	m.FeedsSucceeded = tally.Succeeded
	m.FeedsFailed = tally.Failed

	quotes, omitted := market.FetchAll(ctx, r.quotes, r.doc.Symbols)
	m.QuotesFetched = len(quotes)
	m.SymbolsOmitted = omitted

	result := r.analyst.Analyze(ctx, articles, quotes)
	m.Provider = result.Provider
	m.BasicFallback = result.Basic

	data := report.Data{
		GeneratedAt:    start,
		Provider:       result.Provider,
		Basic:          result.Basic,
		ArticleCount:   len(articles),
		FeedsSucceeded: tally.Succeeded,
		FeedsTotal:     tally.Succeeded + tally.Failed,
		Quotes:         quotes,
		Analysis:       result.Analysis,
	}

	htmlBody, err := r.reporter.RenderHTML(data)
	if err != nil {
		return m, fmt.Errorf("render report: %w", err)
	}

	subject := fmt.Sprintf("Market Intelligence Brief - %s", start.Format("January 2, 2006"))
	if err := r.sender.Send(subject, report.RenderText(data), htmlBody); err != nil {
		slog.Error("report delivery failed", "error", err)
	} else {
		m.EmailDelivered = true
		slog.Info("report delivered")
	}

	return m, nil
}
