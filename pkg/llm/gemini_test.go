package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func geminiTestProvider(baseURL string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:     "test-key",
		model:      "gemini-2.5-flash",
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func TestGeminiAnalyze(t *testing.T) {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": `{"market_stories":[{"headline":"Rates held","summary":"The Fed held rates."}],"general_stories":[],"outlook":"Watch CPI."}`},
					},
				},
			},
		},
		"usageMetadata": map[string]interface{}{
			"promptTokenCount":     120,
			"candidatesTokenCount": 45,
		},
	}

	var gotPath, gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	p := geminiTestProvider(srv.URL)
	analysis, err := p.Analyze(context.Background(), "prompt")

	assert.Equal(t, nil, err)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "", gotQuery)
	assert.Equal(t, 1, len(analysis.MarketStories))
	assert.Equal(t, "Rates held", analysis.MarketStories[0].Headline)
	assert.Equal(t, "Watch CPI.", analysis.Outlook)
	assert.Equal(t, 120, analysis.Usage.PromptTokens)
	assert.Equal(t, 45, analysis.Usage.CompletionTokens)
}

func TestGeminiAnalyzeTransportErrorHidesKey(t *testing.T) {
	p := geminiTestProvider("http://127.0.0.1:1")
	p.apiKey = "SECRET-GEMINI-KEY"

	_, err := p.Analyze(context.Background(), "prompt")

	assert.NotEqual(t, nil, err)
	if strings.Contains(err.Error(), "SECRET-GEMINI-KEY") {
		t.Errorf("error exposes API key: %v", err)
	}
}

func TestGeminiAnalyzeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := geminiTestProvider(srv.URL)
	_, err := p.Analyze(context.Background(), "prompt")

	assert.NotEqual(t, nil, err)
}

func TestGeminiAnalyzeNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	p := geminiTestProvider(srv.URL)
	_, err := p.Analyze(context.Background(), "prompt")

	assert.NotEqual(t, nil, err)
}

func TestGeminiAnalyzeMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json at all"}]}}]}`))
	}))
	defer srv.Close()

	p := geminiTestProvider(srv.URL)
	_, err := p.Analyze(context.Background(), "prompt")

	assert.NotEqual(t, nil, err)
}
