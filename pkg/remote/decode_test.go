package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBooking(t *testing.T) {
	doc := map[string]any{
		"name":          "Reyes Wedding",
		"eventType":     "Wedding",
		"menuPackage":   "Grand Buffet, Iced Tea",
		"eventDate":     "2025-06-14T15:00:00Z",
		"startTime":     "15:00",
		"endTime":       "21:00",
		"numAttendees":  float64(120),
		"contactNumber": "0917-555-0101",
		"paymentMethod": "GCash",
	}

	b, err := DecodeBooking("bk-1", doc)
	require.NoError(t, err)

	assert.Equal(t, "bk-1", b.ID)
	assert.Equal(t, "Reyes Wedding", b.Name)
	assert.Equal(t, 120, b.NumAttendees)
	assert.Equal(t, time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC), b.EventDate)
	assert.Equal(t, 0, b.ScannedCount, "scannedCount defaults to zero when absent")
	assert.Empty(t, b.Status, "remote status-like fields are not trusted")
}

func TestDecodeBookingToleratesLooseTypes(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want func(t *testing.T, err error, attendees int, date time.Time)
	}{
		{
			name: "attendees as comma-formatted string",
			doc: map[string]any{
				"eventDate":    "2025-01-02",
				"numAttendees": "1,500",
			},
			want: func(t *testing.T, err error, attendees int, _ time.Time) {
				require.NoError(t, err)
				assert.Equal(t, 1500, attendees)
			},
		},
		{
			name: "event date as unix seconds",
			doc: map[string]any{
				"eventDate":    float64(1750000000),
				"numAttendees": 10,
			},
			want: func(t *testing.T, err error, _ int, date time.Time) {
				require.NoError(t, err)
				assert.Equal(t, time.Unix(1750000000, 0).UTC(), date)
			},
		},
		{
			name: "date-only string",
			doc: map[string]any{
				"eventDate":    "2025-03-09",
				"numAttendees": 1,
			},
			want: func(t *testing.T, err error, _ int, date time.Time) {
				require.NoError(t, err)
				assert.Equal(t, 2025, date.Year())
				assert.Equal(t, time.March, date.Month())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeBooking("x", tt.doc)
			var attendees int
			var date time.Time
			if b != nil {
				attendees, date = b.NumAttendees, b.EventDate
			}
			tt.want(t, err, attendees, date)
		})
	}
}

func TestDecodeBookingRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		doc   map[string]any
		field string
	}{
		{
			name:  "missing event date",
			doc:   map[string]any{"numAttendees": 5},
			field: "eventDate",
		},
		{
			name:  "garbage event date",
			doc:   map[string]any{"eventDate": "next tuesday", "numAttendees": 5},
			field: "eventDate",
		},
		{
			name:  "missing attendees",
			doc:   map[string]any{"eventDate": "2025-01-02"},
			field: "numAttendees",
		},
		{
			name:  "negative attendees",
			doc:   map[string]any{"eventDate": "2025-01-02", "numAttendees": -4},
			field: "numAttendees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBooking("bad", tt.doc)
			require.Error(t, err)

			var malformed *MalformedBookingError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
			assert.Equal(t, "bad", malformed.ID)
		})
	}
}

func TestDecodeAttendee(t *testing.T) {
	a, err := DecodeAttendee("att-1", map[string]any{
		"name":      "Dana",
		"numPeople": float64(3),
		"scannedAt": "2025-06-14T16:05:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, a.NumPeople)
	assert.False(t, a.ScannedAt.IsZero())

	_, err = DecodeAttendee("att-2", map[string]any{"name": "NoCount"})
	assert.Error(t, err)
}
