package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"RiskSentinel/internal/model"
)

// MockFetcher serves deterministic synthetic data for development and
// testing. Each ticker gets its own price process seeded from its
// name, so repeated runs see identical series.
type MockFetcher struct {
	Quotes    map[string]model.Quote
	Histories map[string]model.PriceHistory
	Start     time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, ticker string, days int) (model.PriceHistory, error) {
	if h, ok := m.Histories[ticker]; ok {
		return h.Tail(days), nil
	}
	return m.generateHistory(ticker, days), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, ticker string) (model.Quote, error) {
	if q, ok := m.Quotes[ticker]; ok {
		return q, nil
	}
	history := m.generateHistory(ticker, 5)
	last := history[len(history)-1]
	prev := history[len(history)-2]
	return model.Quote{
		Ticker:    ticker,
		Price:     last.Close,
		Change:    last.Close - prev.Close,
		ChangePct: (last.Close/prev.Close - 1) * 100,
		Timestamp: last.Date,
	}, nil
}

func (m *MockFetcher) FetchVolumeStats(_ context.Context, ticker string, days int) (model.VolumeStats, error) {
	history := m.generateHistory(ticker, days)
	var priceSum float64
	for _, p := range history {
		priceSum += p.Close
	}
	h := fnv.New64a()
	h.Write([]byte(ticker))
	return model.VolumeStats{
		AvgVolume: float64(1_000_000 + h.Sum64()%9_000_000),
		AvgPrice:  priceSum / float64(len(history)),
	}, nil
}

func (m *MockFetcher) generateHistory(ticker string, days int) model.PriceHistory {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, 1))

	base := 50 + float64(seed%200)
	drift := 0.0003 + float64(seed%7)*0.0001
	vol := 0.008 + float64(seed%5)*0.002

	start := m.Start
	if start.IsZero() {
		start = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	}

	history := make(model.PriceHistory, 0, days)
	price := base
	date := start
	for len(history) < days {
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			price *= math.Exp(drift - 0.5*vol*vol + vol*rng.NormFloat64())
			history = append(history, model.PricePoint{
				Date:  date,
				Close: math.Round(price*100) / 100,
			})
		}
		date = date.AddDate(0, 0, 1)
	}
	return history
}
