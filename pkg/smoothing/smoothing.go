package smoothing

import "fmt"

// Method names a smoothing algorithm for configuration purposes.
type Method string

const (
	MethodMovingAverage         Method = "moving_average"
	MethodWeightedMovingAverage Method = "weighted_moving_average"
	MethodExponential           Method = "exponential"
)

// MovingAverage returns the simple moving average of data with the
// given window. The window shrinks at the start of the series instead
// of requiring a full window, so the output has the same length as
// the input.
func MovingAverage(data []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be >= 1, got %d", window)
	}

	result := make([]float64, 0, len(data))
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= window {
			sum -= data[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		result = append(result, sum/float64(n))
	}
	return result, nil
}

// WeightedMovingAverage returns the weighted moving average of data
// with the given window. Weights [window, window-1, ..., 1] are applied
// most-recent-first over the same shrinking window as MovingAverage,
// and each point is normalized by the sum of the weights actually used.
func WeightedMovingAverage(data []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be >= 1, got %d", window)
	}

	result := make([]float64, 0, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		var weightedSum, weightSum float64
		for j := i; j >= start; j-- {
			// weight `window` for data[i], window-1 for data[i-1], ...
			w := float64(window - (i - j))
			weightedSum += data[j] * w
			weightSum += w
		}
		result = append(result, weightedSum/weightSum)
	}
	return result, nil
}

// ExponentialSmoothing returns the single exponential smoothing of
// data with factor alpha in (0,1). The first smoothed value equals
// the first observation.
func ExponentialSmoothing(data []float64, alpha float64) ([]float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0,1), got %v", alpha)
	}
	if len(data) == 0 {
		return []float64{}, nil
	}

	result := make([]float64, len(data))
	result[0] = data[0]
	for i := 1; i < len(data); i++ {
		result[i] = alpha*data[i] + (1-alpha)*result[i-1]
	}
	return result, nil
}

// Smooth applies the named method to data. Window is used by the
// moving-average methods, alpha by exponential smoothing.
func Smooth(method Method, data []float64, window int, alpha float64) ([]float64, error) {
	switch method {
	case MethodMovingAverage:
		return MovingAverage(data, window)
	case MethodWeightedMovingAverage:
		return WeightedMovingAverage(data, window)
	case MethodExponential:
		return ExponentialSmoothing(data, alpha)
	default:
		return nil, fmt.Errorf("unknown smoothing method: %q", method)
	}
}
