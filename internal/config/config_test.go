package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FINNHUB_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
		"SENDER_EMAIL", "SENDER_PASSWORD", "RECIPIENT_EMAIL",
		"SMTP_HOST", "SMTP_PORT", "FEEDS_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FINNHUB_API_KEY", "fh-key")
	t.Setenv("OPENAI_API_KEY", "oa-key")
	t.Setenv("SENDER_EMAIL", "sender@example.com")
	t.Setenv("SENDER_PASSWORD", "app-password")
	t.Setenv("RECIPIENT_EMAIL", "recipient@example.com")
}

func TestValidateReportsAllMissingVariables(t *testing.T) {
	clearEnv(t)

	err := FromEnv().Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, name := range []string{"FINNHUB_API_KEY", "SENDER_EMAIL", "SENDER_PASSWORD", "RECIPIENT_EMAIL"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestValidateRequiresOneAIKey(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	err := FromEnv().Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	assert.Equal(t, true, strings.Contains(err.Error(), "no AI provider API key"))

	t.Setenv("GEMINI_API_KEY", "gm-key")
	assert.Equal(t, nil, FromEnv().Validate())
}

func TestFromEnvDefaultsAndOverrides(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)

	cfg := FromEnv()
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)

	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	cfg = FromEnv()
	assert.Equal(t, "mail.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("abcd"))
	assert.Equal(t, "sk-1****", Mask("sk-1234567890"))
}

func TestLoadFeedDocumentEmbeddedDefault(t *testing.T) {
	doc, err := LoadFeedDocument("")

	assert.Equal(t, nil, err)
	assert.NotEqual(t, 0, len(doc.RSSFeeds))
	assert.NotEqual(t, 0, len(doc.Symbols))

	var sawDisabled bool
	for _, src := range doc.RSSFeeds {
		if src.Name == "" || src.URL == "" {
			t.Errorf("feed with empty identity: %+v", src)
		}
		if !src.Enabled {
			sawDisabled = true
		}
	}
	assert.Equal(t, true, sawDisabled)

	opts := doc.IngestorOptions()
	assert.Equal(t, 5, opts.MaxArticlesPerFeed)
	assert.Equal(t, 15*time.Second, opts.DefaultTimeout)
	assert.Equal(t, 10*time.Second, opts.TimeoutOverrides["Newsmax Headlines"])
	assert.Equal(t, 2*time.Second, opts.RateLimitDelay)
}

func TestLoadFeedDocumentFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.json")
	content := `{
		"rss_feeds": [{"name": "Only Feed", "url": "https://example.com/rss", "enabled": true, "category": "markets"}],
		"symbols": ["SPY"],
		"config": {"max_articles_per_feed": 3, "default_timeout_seconds": 8, "rate_limit_delay_seconds": 0.5}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFeedDocument(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(doc.RSSFeeds))
	assert.Equal(t, "Only Feed", doc.RSSFeeds[0].Name)
	assert.Equal(t, []string{"SPY"}, doc.Symbols)
	assert.Equal(t, 500*time.Millisecond, doc.IngestorOptions().RateLimitDelay)
}

func TestLoadFeedDocumentErrors(t *testing.T) {
	if _, err := LoadFeedDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"rss_feeds": []}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFeedDocument(path); err == nil {
		t.Error("expected error for empty feed list")
	}
}
