package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries every environment-provided credential the run needs,
// validated once at startup before any network call. Field names match the
// required variables.
type Config struct {
	FinnhubAPIKey   string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	SenderEmail     string
	SenderPassword  string
	RecipientEmail  string
	SMTPHost        string
	SMTPPort        int
	FeedsConfigPath string
}

func FromEnv() *Config {
	cfg := &Config{
		FinnhubAPIKey:   os.Getenv("FINNHUB_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		SenderEmail:     os.Getenv("SENDER_EMAIL"),
		SenderPassword:  os.Getenv("SENDER_PASSWORD"),
		RecipientEmail:  os.Getenv("RECIPIENT_EMAIL"),
		SMTPHost:        "smtp.gmail.com",
		SMTPPort:        587,
		FeedsConfigPath: os.Getenv("FEEDS_CONFIG"),
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.SMTPHost = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.SMTPPort = n
		}
	}

	return cfg
}

// Validate reports every missing required variable in a single error.
func (c *Config) Validate() error {
	var missing []string
	if c.FinnhubAPIKey == "" {
		missing = append(missing, "FINNHUB_API_KEY")
	}
	if c.SenderEmail == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if c.SenderPassword == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if c.RecipientEmail == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.OpenAIAPIKey == "" && c.AnthropicAPIKey == "" && c.GeminiAPIKey == "" {
		return fmt.Errorf("no AI provider API key configured: set at least one of OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY")
	}

	return nil
}

// Mask hides a credential value for logging.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
