package utils

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the sample variance (n-1 denominator), 0 when fewer
// than two points are available.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values)-1)
}

// StdDev returns the sample standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Correlation returns the Pearson correlation of two equal-length series.
// Degenerate input (mismatched length, fewer than two points, zero
// variance on either side) yields 0.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	meanX := Mean(x)
	meanY := Mean(y)
	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// Percentile returns the p-th percentile (0-100) using linear
// interpolation between closest ranks. Empty input yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// SMA returns the simple moving average of the last period points,
// shrinking the window when the series is shorter.
func SMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 || period > len(values) {
		period = len(values)
	}
	return Mean(values[len(values)-period:])
}

// EMA returns the exponential moving average over the whole series with
// the smoothing factor of the given period. A series shorter than the
// period still produces a value from the available points.
func EMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if period <= 0 {
		period = len(values)
	}
	alpha := 2.0 / (float64(period) + 1.0)
	ema := values[0]
	for _, v := range values[1:] {
		ema = v*alpha + ema*(1-alpha)
	}
	return ema
}

// SafeDiv divides a by b, returning the fallback when b is zero or not
// finite. Every indicator ratio goes through this guard.
func SafeDiv(a, b, fallback float64) float64 {
	if b == 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return fallback
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return fallback
	}
	return q
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
