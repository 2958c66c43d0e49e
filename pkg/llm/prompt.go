package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/feeds"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/market"
)

const systemPrompt = `You are a professional financial market analyst. You receive today's news headlines and a market quote snapshot and produce a concise daily intelligence brief.

Rules:
1. Select the most significant market and economy stories for market_stories
2. Select notable non-market stories for general_stories
3. Each story summary is 1-3 neutral sentences; keep all facts, numbers and names
4. The outlook is a short paragraph on what to watch next, grounded in the provided data
5. Do not invent events that are not in the input

Output as JSON only, no other text:
{
  "market_stories": [{"headline": "...", "summary": "..."}],
  "general_stories": [{"headline": "...", "summary": "..."}],
  "outlook": "what to watch next"
}`

// BuildPrompt renders the aggregated articles and quote snapshot into the
// user prompt shared by every provider. Deterministic for identical inputs.
func BuildPrompt(articles []feeds.Article, quotes []market.Quote, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Date: %s\n\n", now.Format("Monday, January 2, 2006"))

	sb.WriteString("MARKET SNAPSHOT\n")
	if len(quotes) == 0 {
		sb.WriteString("(no quote data available)\n")
	}
	for _, q := range quotes {
		fmt.Fprintf(&sb, "%s: %.2f (%+.2f, %+.2f%%)\n", q.Symbol, q.Price, q.Change, q.ChangePercent)
	}

	sb.WriteString("\nHEADLINES\n")
	source := ""
	n := 0
	for _, a := range articles {
		if a.Source != source {
			source = a.Source
			fmt.Fprintf(&sb, "\n## %s (%s)\n", a.Source, a.Category)
		}
		n++
		fmt.Fprintf(&sb, "%d. %s\n", n, a.Title)
		if a.Summary != "" {
			fmt.Fprintf(&sb, "   %s\n", a.Summary)
		}
	}

	return sb.String()
}
