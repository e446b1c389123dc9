package analytics

import "errors"

var (
	// ErrInsufficientData means fewer observations than the minimum
	// sample size, or no eligible non-cash instrument. Callers decide
	// whether to surface it or retry with different parameters; the
	// engine never substitutes a default result for it.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrRegressionUnavailable means a singular or under-determined
	// least-squares system, or missing/misaligned factor series.
	ErrRegressionUnavailable = errors.New("regression unavailable")

	// ErrInvalidParameter means a non-positive price, a window larger
	// than the series, a non-positive simulation count, or a
	// confidence outside (0,1).
	ErrInvalidParameter = errors.New("invalid parameter")
)
