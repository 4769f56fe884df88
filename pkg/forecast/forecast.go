package forecast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/marqueehq/marquee/pkg/smoothing"
	"github.com/marqueehq/marquee/pkg/types"
)

// Period selects the time key bookings are grouped by.
type Period string

const (
	PeriodHour     Period = "hour"
	PeriodTimeSlot Period = "timeslot"
	PeriodMonth    Period = "month"
	PeriodYear     Period = "year"
)

// ValidPeriod reports whether p names a supported grouping.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodHour, PeriodTimeSlot, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// DefaultGrowthFactor is applied to the last smoothed value when
// extrapolating one period beyond the observed range.
const DefaultGrowthFactor = 1.05

// Options configures a forecast series.
type Options struct {
	Method       smoothing.Method
	Window       int
	Alpha        float64
	GrowthFactor float64
}

// DefaultOptions is a 3-wide simple moving average with 5% projected
// growth.
func DefaultOptions() Options {
	return Options{
		Method:       smoothing.MethodMovingAverage,
		Window:       3,
		Alpha:        0.5,
		GrowthFactor: DefaultGrowthFactor,
	}
}

// Series groups the bookings by the given period, counts them, and
// applies the configured smoothing to the ordered count sequence.
// Month- and year-level series get one synthetic projected point
// appended: the last smoothed value times the growth factor. Bookings
// without a usable event date are excluded.
func Series(bookings []*types.Booking, period Period, opts Options) ([]types.ForecastPoint, error) {
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("unknown forecast period: %q", period)
	}
	if opts.GrowthFactor <= 0 {
		opts.GrowthFactor = DefaultGrowthFactor
	}

	keys, counts := group(bookings, period)
	if len(keys) == 0 {
		return []types.ForecastPoint{}, nil
	}

	raw := make([]float64, len(keys))
	for i, k := range keys {
		raw[i] = float64(counts[k])
	}

	smoothed, err := smoothing.Smooth(opts.Method, raw, opts.Window, opts.Alpha)
	if err != nil {
		return nil, err
	}

	points := make([]types.ForecastPoint, 0, len(keys)+1)
	for i, k := range keys {
		points = append(points, types.ForecastPoint{
			Period:   labelFor(period, k),
			RawCount: counts[k],
			Smoothed: smoothed[i],
		})
	}

	if period == PeriodMonth || period == PeriodYear {
		points = append(points, types.ForecastPoint{
			Period:    nextPeriodLabel(period, keys[len(keys)-1]),
			Smoothed:  smoothed[len(smoothed)-1] * opts.GrowthFactor,
			Projected: true,
		})
	}
	return points, nil
}

// Demand extracts the smoothed values of a series, the input the
// pricing strategy expects.
func Demand(points []types.ForecastPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Smoothed
	}
	return out
}

// group returns the sorted period keys and the booking count per key.
// Keys are kept in a sortable canonical form and turned into display
// labels afterward.
func group(bookings []*types.Booking, period Period) ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, b := range bookings {
		if b.EventDate.IsZero() {
			continue
		}
		key, ok := keyFor(b, period)
		if !ok {
			continue
		}
		counts[key]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, counts
}

func keyFor(b *types.Booking, period Period) (string, bool) {
	switch period {
	case PeriodHour:
		hour := b.EventDate.Hour()
		if h, ok := parseStartHour(b.StartTime); ok {
			hour = h
		}
		return fmt.Sprintf("%02d", hour), true
	case PeriodTimeSlot:
		if b.StartTime == "" {
			return "", false
		}
		return b.StartTime, true
	case PeriodMonth:
		return b.EventDate.Format("2006-01"), true
	case PeriodYear:
		return b.EventDate.Format("2006"), true
	}
	return "", false
}

func labelFor(period Period, key string) string {
	switch period {
	case PeriodHour:
		h, _ := strconv.Atoi(key)
		return to12Hour(h)
	case PeriodTimeSlot:
		if h, ok := parseStartHour(key); ok {
			return to12Hour(h)
		}
		return key
	}
	return key
}

func nextPeriodLabel(period Period, lastKey string) string {
	switch period {
	case PeriodYear:
		y, _ := strconv.Atoi(lastKey)
		return strconv.Itoa(y + 1)
	case PeriodMonth:
		t, err := time.Parse("2006-01", lastKey)
		if err != nil {
			return lastKey
		}
		return t.AddDate(0, 1, 0).Format("2006-01")
	}
	return lastKey
}

// parseStartHour extracts the hour from an "HH:MM" time-of-day value.
func parseStartHour(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// to12Hour renders an hour of day as its 12-hour clock label.
func to12Hour(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, period)
}
