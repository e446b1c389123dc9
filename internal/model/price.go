package model

import "time"

// DateFormat is the wire format for all dates in result records.
const DateFormat = "2006-01-02"

// PricePoint is a single daily closing observation.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceHistory holds an ascending-by-date series of daily closes for
// one instrument. The engine only reads it; the market-data layer owns it.
type PriceHistory []PricePoint

// Closes returns the closing prices in order.
func (h PriceHistory) Closes() []float64 {
	closes := make([]float64, len(h))
	for i, p := range h {
		closes[i] = p.Close
	}
	return closes
}

// Dates returns the observation dates formatted as YYYY-MM-DD.
func (h PriceHistory) Dates() []string {
	dates := make([]string, len(h))
	for i, p := range h {
		dates[i] = p.Date.Format(DateFormat)
	}
	return dates
}

// Tail returns the most recent n points (the whole history if shorter).
func (h PriceHistory) Tail(n int) PriceHistory {
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}

// Quote is a current price snapshot from the market-data provider.
type Quote struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
	Timestamp time.Time `json:"timestamp"`
}
