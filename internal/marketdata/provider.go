package marketdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"RiskSentinel/internal/model"
)

// Provider serves price histories and quotes through a TTL cache in
// front of the configured fetcher. Fetch failures for individual
// tickers degrade to missing entries rather than failing the batch.
type Provider struct {
	fetcher Fetcher
	cache   Cache
	log     zerolog.Logger
}

// NewProvider wires a fetcher and cache together.
func NewProvider(fetcher Fetcher, cache Cache, log zerolog.Logger) *Provider {
	return &Provider{fetcher: fetcher, cache: cache, log: log}
}

func historyKey(ticker string) string { return "history:" + ticker }
func quoteKey(ticker string) string   { return "quote:" + ticker }

// History returns up to days of daily closes for one ticker.
func (p *Provider) History(ctx context.Context, ticker string, days int) (model.PriceHistory, error) {
	if cached, ok := p.cache.Get(ctx, historyKey(ticker)); ok {
		var history model.PriceHistory
		// A cached series from an earlier, smaller request cannot
		// satisfy a longer window; fall through and refetch.
		if err := json.Unmarshal([]byte(cached), &history); err == nil && len(history) >= days {
			return history.Tail(days), nil
		}
	}

	history, err := p.fetcher.FetchDailyCloses(ctx, ticker, days)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	if payload, err := json.Marshal(history); err == nil {
		p.cache.Set(ctx, historyKey(ticker), string(payload), HistoryTTL)
	}
	return history, nil
}

// Histories fetches daily closes for many tickers. Tickers that fail
// are logged and omitted from the result; cash never hits the fetcher.
func (p *Provider) Histories(ctx context.Context, tickers []string, days int) map[string]model.PriceHistory {
	out := make(map[string]model.PriceHistory, len(tickers))
	for _, ticker := range tickers {
		if ticker == model.CashTicker {
			continue
		}
		history, err := p.History(ctx, ticker, days)
		if err != nil {
			p.log.Warn().Str("ticker", ticker).Err(err).Msg("history fetch failed, skipping")
			continue
		}
		out[ticker] = history
	}
	return out
}

// Refresh bypasses the cache, refetches histories and rewrites the
// cached entries. Returns the tickers that refreshed successfully.
func (p *Provider) Refresh(ctx context.Context, tickers []string, days int) []string {
	var refreshed []string
	for _, ticker := range tickers {
		if ticker == model.CashTicker {
			continue
		}
		history, err := p.fetcher.FetchDailyCloses(ctx, ticker, days)
		if err != nil {
			p.log.Warn().Str("ticker", ticker).Err(err).Msg("refresh failed")
			continue
		}
		if payload, err := json.Marshal(history); err == nil {
			p.cache.Set(ctx, historyKey(ticker), string(payload), HistoryTTL)
		}
		refreshed = append(refreshed, ticker)
	}
	return refreshed
}

// VolumeData fetches recent volume statistics for many tickers,
// omitting failures. Volume is not cached; it changes slowly and the
// liquidity endpoint is rarely hit.
func (p *Provider) VolumeData(ctx context.Context, tickers []string, days int) map[string]model.VolumeStats {
	out := make(map[string]model.VolumeStats, len(tickers))
	for _, ticker := range tickers {
		if ticker == model.CashTicker {
			continue
		}
		stats, err := p.fetcher.FetchVolumeStats(ctx, ticker, days)
		if err != nil {
			p.log.Warn().Str("ticker", ticker).Err(err).Msg("volume fetch failed, skipping")
			continue
		}
		out[ticker] = stats
	}
	return out
}

// Quote returns the current price snapshot for one ticker.
func (p *Provider) Quote(ctx context.Context, ticker string) (model.Quote, error) {
	if cached, ok := p.cache.Get(ctx, quoteKey(ticker)); ok {
		var quote model.Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return quote, nil
		}
	}

	quote, err := p.fetcher.FetchQuote(ctx, ticker)
	if err != nil {
		return model.Quote{}, fmt.Errorf("quote %s: %w", ticker, err)
	}
	if payload, err := json.Marshal(quote); err == nil {
		p.cache.Set(ctx, quoteKey(ticker), string(payload), QuoteTTL)
	}
	return quote, nil
}

// Quotes returns snapshots for many tickers, omitting failures.
func (p *Provider) Quotes(ctx context.Context, tickers []string) map[string]model.Quote {
	out := make(map[string]model.Quote, len(tickers))
	for _, ticker := range tickers {
		if ticker == model.CashTicker {
			continue
		}
		quote, err := p.Quote(ctx, ticker)
		if err != nil {
			p.log.Warn().Str("ticker", ticker).Err(err).Msg("quote fetch failed, skipping")
			continue
		}
		out[ticker] = quote
	}
	return out
}
