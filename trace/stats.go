package trace

import (
	"math"
	"slices"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile of data using linear
// interpolation between closest ranks. data must be sorted ascending and
// non-empty.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal := data[lowerIdx]
	upperVal := data[upperIdx]
	return float64(lowerVal) + float64(upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of numbers, or 0 for an empty slice.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// LatencyStats summarizes a set of latency samples.
type LatencyStats struct {
	Samples int     `yaml:"samples" json:"samples"`
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Mean    float64 `yaml:"mean" json:"mean"`
	P50     float64 `yaml:"p50" json:"p50"`
	P95     float64 `yaml:"p95" json:"p95"`
	P99     float64 `yaml:"p99" json:"p99"`
}

// NewLatencyStats computes distribution statistics over samples. It returns
// nil when there are no samples. samples is not modified.
func NewLatencyStats(samples []int64) *LatencyStats {
	if len(samples) == 0 {
		return nil
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return &LatencyStats{
		Samples: len(sorted),
		Min:     float64(sorted[0]),
		Max:     float64(sorted[len(sorted)-1]),
		Mean:    CalculateMean(sorted),
		P50:     CalculatePercentile(sorted, 50),
		P95:     CalculatePercentile(sorted, 95),
		P99:     CalculatePercentile(sorted, 99),
	}
}

// Scaled returns a copy with every time value divided by divisor.
func (s *LatencyStats) Scaled(divisor float64) *LatencyStats {
	if s == nil {
		return nil
	}
	return &LatencyStats{
		Samples: s.Samples,
		Min:     s.Min / divisor,
		Max:     s.Max / divisor,
		Mean:    s.Mean / divisor,
		P50:     s.P50 / divisor,
		P95:     s.P95 / divisor,
		P99:     s.P99 / divisor,
	}
}
