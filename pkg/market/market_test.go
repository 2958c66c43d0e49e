package market

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type stubFetcher struct {
	quotes map[string]*Quote
	calls  []string
}

func (s *stubFetcher) Quote(ctx context.Context, symbol string) (*Quote, error) {
	s.calls = append(s.calls, symbol)
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown symbol %s", symbol)
	}
	return q, nil
}

func TestFetchAllOmitsFailedSymbols(t *testing.T) {
	now := time.Now()
	fetcher := &stubFetcher{quotes: map[string]*Quote{
		"SPY": {Symbol: "SPY", Price: 512.34, Change: 1.2, ChangePercent: 0.23, Timestamp: now},
		"GLD": {Symbol: "GLD", Price: 211.05, Change: -0.8, ChangePercent: -0.38, Timestamp: now},
	}}

	quotes, omitted := FetchAll(context.Background(), fetcher, []string{"SPY", "UUP", "GLD"})

	assert.Equal(t, []string{"SPY", "UUP", "GLD"}, fetcher.calls)
	assert.Equal(t, 2, len(quotes))
	assert.Equal(t, "SPY", quotes[0].Symbol)
	assert.Equal(t, "GLD", quotes[1].Symbol)
	assert.Equal(t, []string{"UUP"}, omitted)
}

func TestFetchAllAllSymbolsFail(t *testing.T) {
	fetcher := &stubFetcher{}

	quotes, omitted := FetchAll(context.Background(), fetcher, []string{"A", "B"})

	assert.Equal(t, 0, len(quotes))
	assert.Equal(t, []string{"A", "B"}, omitted)
}
