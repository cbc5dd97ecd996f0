package stockmentor

import (
	"context"
	"sync"
)

// PopularTickers is the fixed list served by the ticker listing endpoint.
var PopularTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NFLX"}

const summaryFetchPeriod = "1M"

// TickerDetail returns the snapshot for one symbol over the requested period.
func (c *Core) TickerDetail(ctx context.Context, symbol, period string) (*StockSnapshot, error) {
	return c.market.Snapshot(ctx, symbol, period)
}

// TopTickers fetches summaries for the popular ticker list. Symbols are
// fetched concurrently; each symbol's failure is captured in its own entry
// and never suppresses the others.
func (c *Core) TopTickers(ctx context.Context) []TickerSummary {
	return c.fetchSummaries(ctx, PopularTickers)
}

// WatchlistData fetches summaries for every symbol on the user's watchlist,
// with per-symbol error isolation.
func (c *Core) WatchlistData(ctx context.Context, userID int64) ([]TickerSummary, error) {
	symbols, err := c.GetWatchlist(userID)
	if err != nil {
		return nil, err
	}
	return c.fetchSummaries(ctx, symbols), nil
}

func (c *Core) fetchSummaries(ctx context.Context, symbols []string) []TickerSummary {
	summaries := make([]TickerSummary, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			summary, err := c.market.Summary(ctx, symbol, summaryFetchPeriod)
			if err != nil {
				c.logger.Warn("ticker summary fetch failed", "symbol", symbol, "err", err)
				summary.Error = "Failed to fetch data"
			}
			summaries[i] = summary
		}(i, symbol)
	}
	wg.Wait()
	return summaries
}

// ValidateSymbol confirms the market-data provider knows the symbol.
// Used before a symbol is added to a watchlist.
func (c *Core) ValidateSymbol(ctx context.Context, symbol string) error {
	_, err := c.market.metadata(ctx, symbol)
	return err
}
