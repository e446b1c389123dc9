package analytics

import (
	"math"
	"sort"
)

// Percentile computes the p-th percentile (0-100) using linear
// interpolation between order statistics, the numpy default. The
// decomposition and VaR tests depend on this exact estimator; gonum's
// quantile kinds compute different ones.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	h := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// PopStdDev is the population (ddof=0) standard deviation, matching
// numpy's np.std default. gonum's stat.StdDev applies the sample
// correction and would shift every volatility figure.
func PopStdDev(x []float64) float64 {
	return math.Sqrt(PopVariance(x))
}

// PopVariance is the population (ddof=0) variance.
func PopVariance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	m := Mean(x)
	var ss float64
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(x))
}

// Skewness is the biased (population-moment) skewness g1 = m3/m2^1.5,
// the scipy.stats.skew default. gonum's stat.Skew applies the sample
// bias correction and drifts from it at small n.
func Skewness(x []float64) float64 {
	m2, m3, _ := centralMoments(x)
	if m2 == 0 {
		return 0
	}
	return m3 / math.Pow(m2, 1.5)
}

// ExcessKurtosis is the biased excess kurtosis g2 = m4/m2^2 - 3, the
// scipy.stats.kurtosis default.
func ExcessKurtosis(x []float64) float64 {
	m2, _, m4 := centralMoments(x)
	if m2 == 0 {
		return 0
	}
	return m4/(m2*m2) - 3
}

func centralMoments(x []float64) (m2, m3, m4 float64) {
	if len(x) == 0 {
		return 0, 0, 0
	}
	m := Mean(x)
	n := float64(len(x))
	for _, v := range x {
		d := v - m
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	return m2 / n, m3 / n, m4 / n
}

// round2 rounds to two decimals. Applied only at result boundaries;
// internal math stays in fractional units.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 rounds to three decimals (regression coefficients).
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
