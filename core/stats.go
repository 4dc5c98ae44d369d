package core

import (
	"math"
	"sort"

	"github.com/teampulse/teampulse/schema"
)

// trendDeadZone is the relative difference below which two series segments
// read as equivalent, so noise does not flip the trend classification.
const trendDeadZone = schema.DefaultTrendDeadZone

// mean computes the arithmetic mean. Empty input yields 0.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev computes the population standard deviation. Fewer than two values
// yield 0.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// percentile returns the value at the given percentile (0..1) of the input,
// using nearest-rank on a sorted copy. Empty input yields 0.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	return sorted[rank]
}

// rollingAverage smooths the series with a trailing window. Each output
// point is the mean of the last min(window, i+1) inputs, so the output has
// the same length as the input.
func rollingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := min(i+1, window)
		out[i] = sum / float64(n)
	}
	return out
}

// classifyTrend compares the mean of the first third of the series to the
// mean of the last third. Differences within the dead zone (relative to the
// first-third mean) classify as stable. Returns the direction plus both
// segment means and the relative change.
func classifyTrend(series []float64) (schema.TrendDirection, float64, float64, float64) {
	if len(series) == 0 {
		return schema.TrendStable, 0, 0, 0
	}

	third := len(series) / 3
	if third < 1 {
		third = 1
	}
	first := mean(series[:third])
	last := mean(series[len(series)-third:])

	if first == 0 {
		if last == 0 {
			return schema.TrendStable, first, last, 0
		}
		return schema.TrendIncreasing, first, last, 1
	}

	change := (last - first) / first
	switch {
	case math.Abs(change) <= trendDeadZone:
		return schema.TrendStable, first, last, change
	case change > 0:
		return schema.TrendIncreasing, first, last, change
	default:
		return schema.TrendDecreasing, first, last, change
	}
}

// coefficientOfVariation returns stddev/mean, or 0 when the mean is 0.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stddev(values) / m
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
