package run

import (
	"log/slog"
	"time"
)

// Metrics is the write-once summary of a single run, logged and discarded.
type Metrics struct {
	RunID             string
	StartedAt         time.Time
	Duration          time.Duration
	ArticlesProcessed int
	FeedsSucceeded    int
	FeedsFailed       int
	QuotesFetched     int
	SymbolsOmitted    []string
	Provider          string
	BasicFallback     bool
	EmailDelivered    bool
}

func (m *Metrics) Log() {
	slog.Info("run complete",
		"run_id", m.RunID,
		"duration", m.Duration.Round(time.Millisecond).String(),
		"articles", m.ArticlesProcessed,
		"feeds_succeeded", m.FeedsSucceeded,
		"feeds_failed", m.FeedsFailed,
		"quotes", m.QuotesFetched,
		"symbols_omitted", m.SymbolsOmitted,
		"provider", m.Provider,
		"basic_fallback", m.BasicFallback,
		"email_delivered", m.EmailDelivered,
	)
}
