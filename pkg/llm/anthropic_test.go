package llm

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/go-playground/assert/v2"
)

func TestNewAnthropicProvider(t *testing.T) {
	p := NewAnthropicProvider("test-key")

	assert.Equal(t, "anthropic/claude-4.5-haiku", p.Name())
	assert.Equal(t, anthropic.Model("claude-haiku-4-5-20251001"), p.model)
}
