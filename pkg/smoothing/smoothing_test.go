package smoothing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		window   int
		expected []float64
	}{
		{
			name:     "window shrinks at the start",
			data:     []float64{1, 2, 3, 4},
			window:   2,
			expected: []float64{1, 1.5, 2.5, 3.5},
		},
		{
			name:     "window larger than series",
			data:     []float64{2, 4},
			window:   5,
			expected: []float64{2, 3},
		},
		{
			name:     "window of one is identity",
			data:     []float64{3, 1, 4},
			window:   1,
			expected: []float64{3, 1, 4},
		},
		{
			name:     "empty input",
			data:     nil,
			window:   3,
			expected: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MovingAverage(tt.data, tt.window)
			require.NoError(t, err)
			require.Len(t, result, len(tt.data))
			for i := range tt.expected {
				assert.InDelta(t, tt.expected[i], result[i], 1e-9)
			}
		})
	}
}

func TestMovingAverageInvalidWindow(t *testing.T) {
	_, err := MovingAverage([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestWeightedMovingAverage(t *testing.T) {
	data := []float64{1, 2, 3}
	result, err := WeightedMovingAverage(data, 2)
	require.NoError(t, err)
	require.Len(t, result, 3)

	// point 0: only one element, weight 2 -> 1
	assert.InDelta(t, 1.0, result[0], 1e-9)
	// point 1: (2*2 + 1*1) / 3
	assert.InDelta(t, 5.0/3.0, result[1], 1e-3)
	// point 2: (2*3 + 1*2) / 3
	assert.InDelta(t, 8.0/3.0, result[2], 1e-3)
}

func TestWeightedMovingAverageNormalizesShrunkWindow(t *testing.T) {
	// With window 3 over a 2-element series the weight sum must be
	// 3+2, not 3+2+1.
	result, err := WeightedMovingAverage([]float64{10, 10}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, result[0], 1e-9)
	assert.InDelta(t, 10.0, result[1], 1e-9)
}

func TestExponentialSmoothing(t *testing.T) {
	result, err := ExponentialSmoothing([]float64{10, 20, 30}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 15, 22.5}, result)
}

func TestExponentialSmoothingInvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 1, -0.5, 1.5} {
		_, err := ExponentialSmoothing([]float64{1}, alpha)
		assert.Error(t, err, "alpha %v", alpha)
	}
}

func TestSmoothDispatch(t *testing.T) {
	data := []float64{1, 2, 3, 4}

	sma, err := Smooth(MethodMovingAverage, data, 2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, sma[3], 1e-9)

	wma, err := Smooth(MethodWeightedMovingAverage, data, 2, 0)
	require.NoError(t, err)
	assert.Len(t, wma, 4)

	ses, err := Smooth(MethodExponential, data, 0, 0.3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ses[0], 1e-9)

	_, err = Smooth(Method("bogus"), data, 2, 0.3)
	assert.Error(t, err)
}

func TestSmoothingIsPure(t *testing.T) {
	data := []float64{5, 1, 9, 2}
	a, err := WeightedMovingAverage(data, 3)
	require.NoError(t, err)
	b, err := WeightedMovingAverage(data, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []float64{5, 1, 9, 2}, data, "input must not be mutated")
}
