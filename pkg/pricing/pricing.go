// Package pricing derives a dynamic price multiplier from a predicted
// demand series. This is a monotonically-reasoned heuristic, not a
// statistical model: the multiplier grows with the spread between the
// busiest and quietest periods, gets a surcharge when peak demand is
// high and a discount when the floor is low, and is capped to avoid
// runaway price hikes.
package pricing

import "errors"

// ErrEmptySeries is returned when a multiplier is requested for a
// series with no points.
var ErrEmptySeries = errors.New("pricing: empty demand series")

const (
	spreadRate     = 0.01
	peakThreshold  = 15
	peakSurcharge  = 1.2
	floorThreshold = 5
	floorDiscount  = 0.9
	capMultiplier  = 2.0
)

// Multiplier computes the price multiplier for a predicted demand
// series.
func Multiplier(series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}

	min, max := series[0], series[0]
	for _, v := range series[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	m := 1 + (max-min)*spreadRate
	if max > peakThreshold {
		m *= peakSurcharge
	}
	if min < floorThreshold {
		m *= floorDiscount
	}
	if m > capMultiplier {
		m = capMultiplier
	}
	return m, nil
}
