package market

import (
	"context"
	"log/slog"
	"time"
)

// Quote is one latest-price snapshot for a tracked symbol.
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	Timestamp     time.Time
}

type QuoteFetcher interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
}

// FetchAll requests one quote per symbol in configured order. A failed
// symbol is logged and omitted from the result set; the batch never aborts.
func FetchAll(ctx context.Context, fetcher QuoteFetcher, symbols []string) ([]Quote, []string) {
	quotes := make([]Quote, 0, len(symbols))
	var omitted []string

	for _, symbol := range symbols {
		q, err := fetcher.Quote(ctx, symbol)
		if err != nil {
			slog.Error("quote fetch failed", "symbol", symbol, "error", err)
			omitted = append(omitted, symbol)
			continue
		}
		quotes = append(quotes, *q)
	}

	return quotes, omitted
}
