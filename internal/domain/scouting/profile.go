package scouting

import (
	"math"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
)

// ExtractProfile reads the record's metrics in metricKeys order. A missing
// key is an error, never a zero.
func ExtractProfile(r player.Record, metricKeys []string) ([]float64, error) {
	out := make([]float64, len(metricKeys))
	for i, k := range metricKeys {
		v, ok := r.Metrics[k]
		if !ok {
			return nil, &MissingMetricError{Label: r.DisplayLabel(), Metric: k}
		}
		out[i] = v
	}
	return out, nil
}

// MetricRange is the min/max of one metric over a population. Defined is
// false when the population was empty.
type MetricRange struct {
	Metric  string
	Min     float64
	Max     float64
	Defined bool
}

// Bounds returns the range or ErrUndefinedRange.
func (m MetricRange) Bounds() (float64, float64, error) {
	if !m.Defined {
		return 0, 0, ErrUndefinedRange
	}
	return m.Min, m.Max, nil
}

// Scale maps v into [0,1] relative to the range. A degenerate range
// (Min == Max) places every value at the midpoint.
func (m MetricRange) Scale(v float64) (float64, error) {
	lo, hi, err := m.Bounds()
	if err != nil {
		return 0, err
	}
	if hi == lo {
		return 0.5, nil
	}
	return math.Max(0, math.Min(1, (v-lo)/(hi-lo))), nil
}

// ComputeRanges scans only the given (already filtered) records. An empty
// population yields an undefined range for every metric.
func ComputeRanges(records []player.Record, metricKeys []string) ([]MetricRange, error) {
	out := make([]MetricRange, len(metricKeys))
	for i, k := range metricKeys {
		out[i] = MetricRange{Metric: k}
	}
	for _, r := range records {
		values, err := ExtractProfile(r, metricKeys)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			rng := &out[i]
			if !rng.Defined {
				rng.Min, rng.Max, rng.Defined = v, v, true
				continue
			}
			rng.Min = math.Min(rng.Min, v)
			rng.Max = math.Max(rng.Max, v)
		}
	}
	return out, nil
}

// AllDefined reports whether every range can be used for rendering.
func AllDefined(ranges []MetricRange) bool {
	for _, r := range ranges {
		if !r.Defined {
			return false
		}
	}
	return len(ranges) > 0
}
