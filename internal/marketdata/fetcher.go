package marketdata

import (
	"context"

	"RiskSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, ticker string, days int) (model.PriceHistory, error)
	FetchQuote(ctx context.Context, ticker string) (model.Quote, error)
	FetchVolumeStats(ctx context.Context, ticker string, days int) (model.VolumeStats, error)
	Name() string
}
