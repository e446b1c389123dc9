package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"RiskSentinel/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // maps internal ticker to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: baseURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(ticker string) string {
	if mapped, ok := f.SymbolMap[ticker]; ok {
		return mapped
	}
	return ticker
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) fetchChartRaw(ctx context.Context, ticker, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(ticker)), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	if len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	return &chart, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, ticker, interval, rng string) (model.PriceHistory, error) {
	chart, err := f.fetchChartRaw(ctx, ticker, interval, rng)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	history := make(model.PriceHistory, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue // skip null bars (holidays etc.)
		}
		history = append(history, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: c,
		})
	}

	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })
	return history, nil
}

func (f *YahooFetcher) FetchDailyCloses(ctx context.Context, ticker string, days int) (model.PriceHistory, error) {
	// Yahoo range: max "2y" for daily interval
	rng := "2y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	}
	history, err := f.fetchChart(ctx, ticker, "1d", rng)
	if err != nil {
		return nil, err
	}
	// Trim to requested count
	return history.Tail(days), nil
}

// FetchVolumeStats averages volume and close over the most recent
// days observations, for liquidity scoring.
func (f *YahooFetcher) FetchVolumeStats(ctx context.Context, ticker string, days int) (model.VolumeStats, error) {
	chart, err := f.fetchChartRaw(ctx, ticker, "1d", "3mo")
	if err != nil {
		return model.VolumeStats{}, err
	}
	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var volumes, prices []float64
	for i := range result.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue
		}
		prices = append(prices, c)
		volumes = append(volumes, toFloat(quote.Volume[i]))
	}
	if len(prices) == 0 {
		return model.VolumeStats{}, fmt.Errorf("yahoo: no volume data for %s", ticker)
	}
	if days > 0 && len(prices) > days {
		prices = prices[len(prices)-days:]
		volumes = volumes[len(volumes)-days:]
	}

	var volSum, priceSum float64
	for i := range prices {
		volSum += volumes[i]
		priceSum += prices[i]
	}
	n := float64(len(prices))
	return model.VolumeStats{AvgVolume: volSum / n, AvgPrice: priceSum / n}, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, ticker string) (model.Quote, error) {
	history, err := f.fetchChart(ctx, ticker, "1d", "5d")
	if err != nil {
		return model.Quote{}, err
	}
	if len(history) == 0 {
		return model.Quote{}, fmt.Errorf("yahoo: no price data")
	}
	last := history[len(history)-1]
	quote := model.Quote{
		Ticker:    ticker,
		Price:     last.Close,
		Timestamp: last.Date,
	}
	if len(history) >= 2 {
		prev := history[len(history)-2].Close
		quote.Change = last.Close - prev
		if prev != 0 {
			quote.ChangePct = (last.Close/prev - 1) * 100
		}
	}
	return quote, nil
}
