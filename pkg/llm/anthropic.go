package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicProvider struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client:    &client,
		model:     anthropic.Model("claude-haiku-4-5-20251001"),
		modelName: "claude-4.5-haiku",
	}
}

func (p *AnthropicProvider) Name() string {
	return "anthropic/" + p.modelName
}

func (p *AnthropicProvider) Analyze(ctx context.Context, prompt string) (*Analysis, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4000,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	analysis, err := parseAnalysis(resp.Content[0].Text)
	if err != nil {
		return nil, err
	}

	analysis.Usage = &TokenUsage{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}

	return analysis, nil
}
