package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/llm"
	"github.com/jsnider89/AI-Market-Aggregator-New/pkg/market"
)

//go:embed template.html
var templateHTML string

// Data is the fully-resolved input for one report. The generator never
// sees partial results; every field is settled before rendering.
type Data struct {
	GeneratedAt    time.Time
	Provider       string
	Basic          bool
	ArticleCount   int
	FeedsSucceeded int
	FeedsTotal     int
	Quotes         []market.Quote
	Analysis       llm.Analysis
}

type Generator struct {
	tmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	funcMap := template.FuncMap{
		"price":   func(f float64) string { return fmt.Sprintf("%.2f", f) },
		"change":  func(f float64) string { return fmt.Sprintf("%+.2f", f) },
		"percent": func(f float64) string { return fmt.Sprintf("%+.2f%%", f) },
		"changeClass": func(f float64) string {
			switch {
			case f > 0:
				return "up"
			case f < 0:
				return "down"
			default:
				return "flat"
			}
		},
		"feedIndicator": FeedIndicator,
		"formatTime": func(t time.Time) string {
			return t.Format("January 2, 2006 at 3:04 PM MST")
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("template parse: %w", err)
	}

	return &Generator{tmpl: tmpl}, nil
}

// RenderHTML produces the complete report document. Free-text content is
// escaped by html/template on interpolation; no raw markup from feeds or
// model output survives into the page.
func (g *Generator) RenderHTML(d Data) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("template execute: %w", err)
	}
	return buf.String(), nil
}

// RenderText is the plain-text alternative part for mail clients that do
// not render HTML.
func RenderText(d Data) string {
	var sb strings.Builder

	sb.WriteString("Market Intelligence Brief\n")
	fmt.Fprintf(&sb, "Generated: %s\n", d.GeneratedAt.Format("January 2, 2006 at 3:04 PM MST"))
	fmt.Fprintf(&sb, "Analysis by: %s\n", d.Provider)
	fmt.Fprintf(&sb, "Data sources: %d articles from %d/%d feeds\n\n", d.ArticleCount, d.FeedsSucceeded, d.FeedsTotal)

	if len(d.Quotes) > 0 {
		sb.WriteString("MARKET SNAPSHOT\n")
		for _, q := range d.Quotes {
			fmt.Fprintf(&sb, "%s: %.2f (%+.2f, %+.2f%%)\n", q.Symbol, q.Price, q.Change, q.ChangePercent)
		}
		sb.WriteString("\n")
	}

	writeStories := func(title string, stories []llm.Story) {
		if len(stories) == 0 {
			return
		}
		sb.WriteString(title + "\n")
		for _, s := range stories {
			fmt.Fprintf(&sb, "- %s\n", s.Headline)
			if s.Summary != "" {
				fmt.Fprintf(&sb, "  %s\n", s.Summary)
			}
		}
		sb.WriteString("\n")
	}

	writeStories("TOP MARKET & ECONOMY STORIES", d.Analysis.MarketStories)
	writeStories("GENERAL NEWS", d.Analysis.GeneralStories)

	if d.Analysis.Outlook != "" {
		sb.WriteString("LOOKING AHEAD\n")
		sb.WriteString(d.Analysis.Outlook + "\n")
	}

	return sb.String()
}

// FeedIndicator maps the feed success rate to a status glyph.
func FeedIndicator(succeeded, total int) string {
	switch {
	case total == 0:
		return "❌"
	case succeeded == total:
		return "✅"
	case float64(succeeded) >= float64(total)*0.8:
		return "⚠️"
	default:
		return "❌"
	}
}
