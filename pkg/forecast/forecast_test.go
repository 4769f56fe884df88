package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueehq/marquee/pkg/smoothing"
	"github.com/marqueehq/marquee/pkg/types"
)

func dated(date string, start string) *types.Booking {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &types.Booking{EventDate: d, StartTime: start}
}

func maOptions(window int) Options {
	return Options{Method: smoothing.MethodMovingAverage, Window: window}
}

func TestSeriesByYear(t *testing.T) {
	bookings := []*types.Booking{
		dated("2024-03-01", ""),
		dated("2024-09-12", ""),
		dated("2025-01-05", ""),
		dated("2025-06-20", ""),
		dated("2025-11-02", ""),
	}

	points, err := Series(bookings, PeriodYear, maOptions(2))
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024", points[0].Period)
	assert.Equal(t, 2, points[0].RawCount)
	assert.InDelta(t, 2.0, points[0].Smoothed, 1e-9)
	assert.False(t, points[0].Projected)

	assert.Equal(t, "2025", points[1].Period)
	assert.Equal(t, 3, points[1].RawCount)
	assert.InDelta(t, 2.5, points[1].Smoothed, 1e-9)

	// Projection: last smoothed value times the default 5% growth.
	assert.Equal(t, "2026", points[2].Period)
	assert.True(t, points[2].Projected)
	assert.InDelta(t, 2.625, points[2].Smoothed, 1e-9)
}

func TestSeriesByMonthProjectionLabel(t *testing.T) {
	bookings := []*types.Booking{
		dated("2025-02-10", ""),
		dated("2025-03-01", ""),
		dated("2025-03-15", ""),
	}

	points, err := Series(bookings, PeriodMonth, maOptions(2))
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2025-02", points[0].Period)
	assert.Equal(t, "2025-03", points[1].Period)
	assert.Equal(t, "2025-04", points[2].Period)
	assert.True(t, points[2].Projected)
}

func TestSeriesByHourUsesTwelveHourLabels(t *testing.T) {
	bookings := []*types.Booking{
		dated("2025-05-01", "14:00"),
		dated("2025-05-02", "14:30"),
		dated("2025-05-03", "09:00"),
	}

	points, err := Series(bookings, PeriodHour, maOptions(1))
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Ordered by hour of day, not by insertion.
	assert.Equal(t, "9:00 AM", points[0].Period)
	assert.Equal(t, 1, points[0].RawCount)
	assert.Equal(t, "2:00 PM", points[1].Period)
	assert.Equal(t, 2, points[1].RawCount)

	// Hourly series describe the day shape; no projection applies.
	for _, p := range points {
		assert.False(t, p.Projected)
	}
}

func TestSeriesByTimeSlotSkipsMissingStart(t *testing.T) {
	bookings := []*types.Booking{
		dated("2025-05-01", "18:00"),
		dated("2025-05-02", ""),
		dated("2025-05-03", "18:00"),
	}

	points, err := Series(bookings, PeriodTimeSlot, maOptions(1))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "6:00 PM", points[0].Period)
	assert.Equal(t, 2, points[0].RawCount)
}

func TestSeriesSkipsUndatedBookings(t *testing.T) {
	bookings := []*types.Booking{
		{Name: "no date"},
		dated("2025-01-01", ""),
	}

	points, err := Series(bookings, PeriodYear, maOptions(1))
	require.NoError(t, err)
	require.Len(t, points, 2) // observed year plus projection
	assert.Equal(t, 1, points[0].RawCount)
}

func TestSeriesEmptyInput(t *testing.T) {
	points, err := Series(nil, PeriodMonth, maOptions(3))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestSeriesRejectsUnknownPeriod(t *testing.T) {
	_, err := Series(nil, Period("decade"), maOptions(3))
	assert.Error(t, err)
}

func TestSeriesExponentialMethod(t *testing.T) {
	bookings := []*types.Booking{
		dated("2023-01-01", ""),
		dated("2024-01-01", ""),
		dated("2024-06-01", ""),
		dated("2025-01-01", ""),
		dated("2025-06-01", ""),
		dated("2025-09-01", ""),
	}

	points, err := Series(bookings, PeriodYear, Options{
		Method: smoothing.MethodExponential,
		Alpha:  0.5,
	})
	require.NoError(t, err)
	require.Len(t, points, 4)

	// Counts 1, 2, 3 smoothed at alpha 0.5: 1, 1.5, 2.25.
	assert.InDelta(t, 1.0, points[0].Smoothed, 1e-9)
	assert.InDelta(t, 1.5, points[1].Smoothed, 1e-9)
	assert.InDelta(t, 2.25, points[2].Smoothed, 1e-9)
	assert.InDelta(t, 2.25*1.05, points[3].Smoothed, 1e-9)
}

func TestDemand(t *testing.T) {
	points := []types.ForecastPoint{
		{Smoothed: 3.5},
		{Smoothed: 7.25},
	}
	assert.Equal(t, []float64{3.5, 7.25}, Demand(points))
}

func TestKeyVariesWithParameters(t *testing.T) {
	base := maOptions(3)
	wider := maOptions(5)
	assert.NotEqual(t, Key(PeriodMonth, base), Key(PeriodMonth, wider))
	assert.NotEqual(t, Key(PeriodMonth, base), Key(PeriodYear, base))
}
