package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/feeds"
)

//go:embed feeds.json
var defaultFeedsJSON []byte

type FeedSettings struct {
	MaxArticlesPerFeed    int            `json:"max_articles_per_feed"`
	DefaultTimeoutSeconds int            `json:"default_timeout_seconds"`
	FeedTimeoutOverrides  map[string]int `json:"feed_timeout_overrides"`
	RateLimitDelaySeconds float64        `json:"rate_limit_delay_seconds"`
}

// FeedDocument is the static JSON configuration document: the feed
// registry, the tracked symbol list, and ingestion settings.
type FeedDocument struct {
	RSSFeeds []feeds.Source `json:"rss_feeds"`
	Symbols  []string       `json:"symbols"`
	Config   FeedSettings   `json:"config"`
}

// LoadFeedDocument reads the document from path, or the embedded default
// when path is empty.
func LoadFeedDocument(path string) (*FeedDocument, error) {
	data := defaultFeedsJSON
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read feed config: %w", err)
		}
	}

	var doc FeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feed config: %w", err)
	}

	if len(doc.RSSFeeds) == 0 {
		return nil, fmt.Errorf("feed config has no rss_feeds")
	}

	return &doc, nil
}

func (d *FeedDocument) IngestorOptions() feeds.Options {
	overrides := make(map[string]time.Duration, len(d.Config.FeedTimeoutOverrides))
	for name, secs := range d.Config.FeedTimeoutOverrides {
		overrides[name] = time.Duration(secs) * time.Second
	}

	return feeds.Options{
		MaxArticlesPerFeed: d.Config.MaxArticlesPerFeed,
		DefaultTimeout:     time.Duration(d.Config.DefaultTimeoutSeconds) * time.Second,
		TimeoutOverrides:   overrides,
		RateLimitDelay:     time.Duration(d.Config.RateLimitDelaySeconds * float64(time.Second)),
	}
}
