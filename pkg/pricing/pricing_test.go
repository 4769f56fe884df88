package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		series   []float64
		expected float64
	}{
		{
			// spread=17 -> 1.17; max>15 -> x1.2; min<5 -> x0.9
			name:     "peak and floor adjustments stack",
			series:   []float64{3, 20, 4},
			expected: 1.2636,
		},
		{
			name:     "flat mid-range series stays at base",
			series:   []float64{10, 10, 10},
			expected: 1.0,
		},
		{
			name:     "small spread without peak or floor hits",
			series:   []float64{6, 8},
			expected: 1.02,
		},
		{
			name:     "single point",
			series:   []float64{7},
			expected: 1.0,
		},
		{
			// spread=100 -> 2.0 base already above cap before surcharge
			name:     "cap applies",
			series:   []float64{100, 200},
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Multiplier(tt.series)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, m, 1e-9)
		})
	}
}

func TestMultiplierEmptySeries(t *testing.T) {
	_, err := Multiplier(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}
