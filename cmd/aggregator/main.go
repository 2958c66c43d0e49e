package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsnider89/AI-Market-Aggregator-New/internal/config"
	"github.com/jsnider89/AI-Market-Aggregator-New/internal/report"
	"github.com/jsnider89/AI-Market-Aggregator-New/internal/run"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/feeds"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/llm"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/market"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Fail fast on missing credentials, before any network call.
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	doc, err := config.LoadFeedDocument(cfg.FeedsConfigPath)
	if err != nil {
		log.Fatalf("error loading feed config: %v", err)
	}

	slog.Info("configuration loaded",
		"feeds", len(doc.RSSFeeds),
		"symbols", len(doc.Symbols),
		"finnhub_key", config.Mask(cfg.FinnhubAPIKey),
	)

	// Providers are tried in this order; only those with a key present
	// are in the chain.
	var providers []llm.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, llm.NewOpenAIProvider(cfg.OpenAIAPIKey))
	}
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, llm.NewAnthropicProvider(cfg.AnthropicAPIKey))
	}
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, llm.NewGeminiProvider(cfg.GeminiAPIKey))
	}

	reporter, err := report.NewGenerator()
	if err != nil {
		log.Fatalf("error building report generator: %v", err)
	}

	sender := report.NewSMTPSender(report.EmailConfig{
		Host:           cfg.SMTPHost,
		Port:           cfg.SMTPPort,
		SenderEmail:    cfg.SenderEmail,
		SenderPassword: cfg.SenderPassword,
		RecipientEmail: cfg.RecipientEmail,
	})

	runner := run.New(
		doc,
		feeds.NewIngestor(doc.IngestorOptions()),
		market.NewFinnhubClient(cfg.FinnhubAPIKey),
		llm.NewClient(providers, 2*time.Minute),
		reporter,
		sender,
	)

	if _, err := runner.Run(context.Background()); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
