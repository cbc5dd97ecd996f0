package stockmentor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const defaultMarketDataBaseURL = "https://api.tiingo.com"

// maxResponseSize limits provider responses to 1MB to prevent memory
// exhaustion from a misbehaving upstream.
const maxResponseSize = 1 << 20

// HTTPDoer is an interface for making HTTP requests. It enables dependency
// injection for testing without network calls.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type marketDataOptions struct {
	Logger      *slog.Logger
	BaseURL     string
	APIKey      string
	HTTPClient  HTTPDoer // Optional: inject custom client for testing
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	RatePerSec  float64
	Now         func() time.Time
}

// marketDataClient talks to the market-data provider and derives snapshots.
// Quotes are read-heavy and write-never, so snapshots are cached for a short
// TTL and concurrent fetches for the same (symbol, period) are collapsed into
// a single outbound call.
type marketDataClient struct {
	logger   *slog.Logger
	baseURL  string
	apiKey   string
	client   HTTPDoer
	limiter  *rate.Limiter
	cacheTTL time.Duration
	now      func() time.Time

	cacheMu sync.RWMutex
	cache   map[string]snapshotCacheEntry
	flight  singleflight.Group
}

type snapshotCacheEntry struct {
	snapshot *StockSnapshot
	ts       time.Time
}

func newMarketDataClient(opts marketDataOptions) *marketDataClient {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultDuration(opts.HTTPTimeout, 10*time.Second)}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultMarketDataBaseURL
	}
	perSec := opts.RatePerSec
	if perSec <= 0 {
		perSec = 10
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &marketDataClient{
		logger:   logger,
		baseURL:  baseURL,
		apiKey:   opts.APIKey,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(perSec), int(perSec)+1),
		cacheTTL: defaultDuration(opts.CacheTTL, 60*time.Second),
		now:      now,
		cache:    map[string]snapshotCacheEntry{},
	}
}

type tickerMetadata struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// metadata fetches provider metadata for a symbol. An unknown symbol is
// reported as ErrSymbolNotFound so callers can surface 404 instead of 500.
func (m *marketDataClient) metadata(ctx context.Context, symbol string) (tickerMetadata, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return tickerMetadata{}, NewError(ErrCodeInvalidInput, "symbol is required")
	}
	body, err := m.get(ctx, fmt.Sprintf("%s/tiingo/daily/%s", m.baseURL, url.PathEscape(symbol)), nil)
	if err != nil {
		return tickerMetadata{}, err
	}
	var meta tickerMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return tickerMetadata{}, WrapError(ErrCodeUpstream, "decode ticker metadata", err)
	}
	if strings.TrimSpace(meta.Name) == "" {
		meta.Name = symbol
	}
	return meta, nil
}

// priceSeries fetches the resolved period's bars, chronologically ascending.
// Intraday periods use the provider's intraday endpoint; everything else the
// daily endpoint with a resample frequency.
func (m *marketDataClient) priceSeries(ctx context.Context, symbol, period string) ([]PricePoint, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, NewError(ErrCodeInvalidInput, "symbol is required")
	}
	pr := resolvePeriod(period, m.now())

	var endpoint string
	params := url.Values{}
	if pr.Resolution == ResolutionIntraday {
		endpoint = fmt.Sprintf("%s/iex/%s/prices", m.baseURL, url.PathEscape(symbol))
		params.Set("resampleFreq", "5min")
	} else {
		endpoint = fmt.Sprintf("%s/tiingo/daily/%s/prices", m.baseURL, url.PathEscape(symbol))
		params.Set("startDate", pr.Start.Format("2006-01-02"))
		params.Set("endDate", pr.End.Format("2006-01-02"))
		params.Set("resampleFreq", string(pr.Resolution))
	}

	body, err := m.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	var series []PricePoint
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, WrapError(ErrCodeUpstream, "decode price series", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w for %s over %s", ErrNoData, symbol, normalizePeriod(period))
	}
	return series, nil
}

// Snapshot fetches metadata and prices for a symbol and derives the period's
// change statistics. Results are cached per (symbol, period); concurrent
// requests for the same key share one outbound fetch.
func (m *marketDataClient) Snapshot(ctx context.Context, symbol, period string) (*StockSnapshot, error) {
	symbol = normalizeSymbol(symbol)
	period = normalizePeriod(period)
	key := symbol + "|" + period

	if snap, ok := m.cached(key); ok {
		return snap, nil
	}

	v, err, _ := m.flight.Do(key, func() (any, error) {
		snap, err := m.fetchSnapshot(ctx, symbol, period)
		if err != nil {
			return nil, err
		}
		m.setCached(key, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*StockSnapshot), nil
}

func (m *marketDataClient) fetchSnapshot(ctx context.Context, symbol, period string) (*StockSnapshot, error) {
	meta, err := m.metadata(ctx, symbol)
	if err != nil {
		return nil, err
	}
	series, err := m.priceSeries(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(symbol, meta, series)
}

// buildSnapshot derives change statistics from a non-empty price series.
func buildSnapshot(symbol string, meta tickerMetadata, series []PricePoint) (*StockSnapshot, error) {
	first := series[0]
	last := series[len(series)-1]
	if first.Close == 0 {
		return nil, NewError(ErrCodeUpstream, fmt.Sprintf("first close price for %s is zero; change percent undefined", symbol))
	}
	change := last.Close - first.Close
	stats := map[string]float64{}
	if last.Volume != 0 {
		stats["volume"] = last.Volume
	}
	return &StockSnapshot{
		Symbol:             symbol,
		Name:               meta.Name,
		Price:              last.Close,
		PriceChange:        change,
		PriceChangePercent: change / first.Close * 100,
		Prices:             series,
		Description:        meta.Description,
		Stats:              stats,
	}, nil
}

// Summary produces the compact listing shape used by ticker lists.
func (m *marketDataClient) Summary(ctx context.Context, symbol, period string) (TickerSummary, error) {
	snap, err := m.Snapshot(ctx, symbol, period)
	if err != nil {
		return TickerSummary{Symbol: normalizeSymbol(symbol)}, err
	}
	summary := TickerSummary{
		Symbol:        snap.Symbol,
		Name:          snap.Name,
		LatestPrice:   &snap.Price,
		Change:        &snap.PriceChange,
		ChangePercent: &snap.PriceChangePercent,
	}
	if v, ok := snap.Stats["volume"]; ok {
		summary.Volume = &v
	}
	return summary, nil
}

func (m *marketDataClient) cached(key string) (*StockSnapshot, bool) {
	m.cacheMu.RLock()
	defer m.cacheMu.RUnlock()
	entry, ok := m.cache[key]
	if !ok || m.now().Sub(entry.ts) > m.cacheTTL {
		return nil, false
	}
	return entry.snapshot, true
}

func (m *marketDataClient) setCached(key string, snap *StockSnapshot) {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()
	m.cache[key] = snapshotCacheEntry{snapshot: snap, ts: m.now()}
}

func (m *marketDataClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, WrapError(ErrCodeUpstream, "market data rate wait", err)
	}
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, WrapError(ErrCodeInternal, "build market data request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Token "+m.apiKey)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, WrapError(ErrCodeUpstream, "market data request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSymbolNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewError(ErrCodeUpstream, fmt.Sprintf("market data http status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, WrapError(ErrCodeUpstream, "read market data response", err)
	}
	return body, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
