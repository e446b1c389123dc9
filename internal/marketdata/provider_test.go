package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

// countingFetcher wraps MockFetcher and counts history fetches, so
// cache behavior is observable.
type countingFetcher struct {
	MockFetcher
	historyCalls int
	failTickers  map[string]bool
}

func (c *countingFetcher) FetchDailyCloses(ctx context.Context, ticker string, days int) (model.PriceHistory, error) {
	c.historyCalls++
	if c.failTickers[ticker] {
		return nil, errors.New("synthetic outage")
	}
	return c.MockFetcher.FetchDailyCloses(ctx, ticker, days)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "k", "v", 50*time.Millisecond)
	val, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", val)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)

	_, ok = cache.Get(ctx, "never-set")
	assert.False(t, ok)
}

func TestProvider_HistoryUsesCache(t *testing.T) {
	fetcher := &countingFetcher{}
	provider := NewProvider(fetcher, NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()

	first, err := provider.History(ctx, "AAPL", 60)
	require.NoError(t, err)
	require.Len(t, first, 60)
	assert.Equal(t, 1, fetcher.historyCalls)

	second, err := provider.History(ctx, "AAPL", 60)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.historyCalls)

	// Cached round trip preserves the series.
	require.Len(t, second, 60)
	for i := range first {
		assert.Equal(t, first[i].Close, second[i].Close)
	}
}

func TestProvider_HistoryRefetchesWhenCacheTooShort(t *testing.T) {
	fetcher := &countingFetcher{}
	provider := NewProvider(fetcher, NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()

	short, err := provider.History(ctx, "AAPL", 30)
	require.NoError(t, err)
	require.Len(t, short, 30)
	require.Equal(t, 1, fetcher.historyCalls)

	// A longer window cannot be served from the shorter cached series.
	long, err := provider.History(ctx, "AAPL", 90)
	require.NoError(t, err)
	assert.Len(t, long, 90)
	assert.Equal(t, 2, fetcher.historyCalls)

	// The refreshed cache now covers the shorter window again.
	short, err = provider.History(ctx, "AAPL", 30)
	require.NoError(t, err)
	assert.Len(t, short, 30)
	assert.Equal(t, 2, fetcher.historyCalls)
}

func TestProvider_HistoriesSkipsCashAndFailures(t *testing.T) {
	fetcher := &countingFetcher{failTickers: map[string]bool{"BAD": true}}
	provider := NewProvider(fetcher, NewMemoryCache(), zerolog.Nop())

	out := provider.Histories(context.Background(), []string{"AAPL", "BAD", model.CashTicker}, 30)

	assert.Contains(t, out, "AAPL")
	assert.NotContains(t, out, "BAD")
	assert.NotContains(t, out, model.CashTicker)
	// Cash never reaches the fetcher.
	assert.Equal(t, 2, fetcher.historyCalls)
}

func TestProvider_RefreshBypassesCache(t *testing.T) {
	fetcher := &countingFetcher{}
	provider := NewProvider(fetcher, NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()

	_, err := provider.History(ctx, "MSFT", 30)
	require.NoError(t, err)
	require.Equal(t, 1, fetcher.historyCalls)

	refreshed := provider.Refresh(ctx, []string{"MSFT", model.CashTicker}, 30)
	assert.Equal(t, []string{"MSFT"}, refreshed)
	assert.Equal(t, 2, fetcher.historyCalls)
}

func TestProvider_QuoteCached(t *testing.T) {
	provider := NewProvider(&MockFetcher{}, NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()

	first, err := provider.Quote(ctx, "SPY")
	require.NoError(t, err)
	assert.Equal(t, "SPY", first.Ticker)
	assert.Greater(t, first.Price, 0.0)

	second, err := provider.Quote(ctx, "SPY")
	require.NoError(t, err)
	assert.Equal(t, first.Price, second.Price)
}

func TestMockFetcher_DeterministicHistories(t *testing.T) {
	fetcher := &MockFetcher{}
	ctx := context.Background()

	first, err := fetcher.FetchDailyCloses(ctx, "AAPL", 100)
	require.NoError(t, err)
	second, err := fetcher.FetchDailyCloses(ctx, "AAPL", 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := fetcher.FetchDailyCloses(ctx, "MSFT", 100)
	require.NoError(t, err)
	assert.NotEqual(t, first[len(first)-1].Close, other[len(other)-1].Close)

	// Weekdays only.
	for _, p := range first {
		wd := p.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestMockFetcher_VolumeStats(t *testing.T) {
	fetcher := &MockFetcher{}
	stats, err := fetcher.FetchVolumeStats(context.Background(), "AAPL", 30)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, stats.AvgVolume, 1_000_000.0)
	assert.Less(t, stats.AvgVolume, 10_000_000.0)
	assert.Greater(t, stats.AvgPrice, 0.0)
}
