package market

import (
	"context"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &FinnhubClient{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (*Quote, error) {
	res, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	return quoteFromFinnhub(symbol, res, time.Now())
}

// quoteFromFinnhub maps the SDK response into a snapshot. The model carries
// no timestamp field, so the snapshot is stamped with the fetch time.
func quoteFromFinnhub(symbol string, res finnhub.Quote, fetchedAt time.Time) (*Quote, error) {
	// Finnhub returns an all-zero quote for unknown symbols.
	if res.C == nil || *res.C == 0 {
		return nil, fmt.Errorf("finnhub quote %s: no data", symbol)
	}

	q := &Quote{
		Symbol:    symbol,
		Price:     float64(*res.C),
		Timestamp: fetchedAt,
	}
	if res.D != nil {
		q.Change = float64(*res.D)
	}
	if res.Dp != nil {
		q.ChangePercent = float64(*res.Dp)
	}

	return q, nil
}
