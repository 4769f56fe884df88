package remote

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marqueehq/marquee/pkg/types"
)

// MalformedBookingError describes a remote document that could not be
// decoded into a well-typed booking. Such records are excluded from
// lifecycle scheduling and forecast aggregation instead of crashing
// the pipeline.
type MalformedBookingError struct {
	ID     string
	Field  string
	Reason string
}

func (e *MalformedBookingError) Error() string {
	return fmt.Sprintf("malformed booking %s: field %q: %s", e.ID, e.Field, e.Reason)
}

// DecodeBooking validates a raw, loosely-typed document and produces
// a typed Booking. eventDate and numAttendees are required; the rest
// of the record is passed through with tolerant coercion. Any status
// field present in the document is ignored because the lifecycle
// manager, not the remote store, is the authority for status.
func DecodeBooking(id string, doc map[string]any) (*types.Booking, error) {
	eventDate, ok := decodeTime(doc["eventDate"])
	if !ok {
		return nil, &MalformedBookingError{ID: id, Field: "eventDate", Reason: "missing or unparseable"}
	}

	attendees, ok := decodeInt(doc["numAttendees"])
	if !ok || attendees < 0 {
		return nil, &MalformedBookingError{ID: id, Field: "numAttendees", Reason: "missing, unparseable or negative"}
	}

	scanned, ok := decodeInt(doc["scannedCount"])
	if !ok || scanned < 0 {
		scanned = 0
	}

	return &types.Booking{
		ID:            id,
		Name:          decodeString(doc["name"]),
		EventType:     decodeString(doc["eventType"]),
		EventTheme:    decodeString(doc["eventTheme"]),
		MenuPackage:   decodeString(doc["menuPackage"]),
		EventDate:     eventDate,
		StartTime:     decodeString(doc["startTime"]),
		EndTime:       decodeString(doc["endTime"]),
		NumAttendees:  attendees,
		ContactNumber: decodeString(doc["contactNumber"]),
		Email:         decodeString(doc["email"]),
		PaymentMethod: decodeString(doc["paymentMethod"]),
		Notes:         decodeString(doc["notes"]),
		ScannedCount:  scanned,
	}, nil
}

// DecodeAttendee validates a raw attendee check-in document.
func DecodeAttendee(id string, doc map[string]any) (*types.Attendee, error) {
	people, ok := decodeInt(doc["numPeople"])
	if !ok || people < 0 {
		return nil, &MalformedBookingError{ID: id, Field: "numPeople", Reason: "missing, unparseable or negative"}
	}
	scannedAt, _ := decodeTime(doc["scannedAt"])

	return &types.Attendee{
		ID:        id,
		Name:      decodeString(doc["name"]),
		NumPeople: people,
		ScannedAt: scannedAt,
	}, nil
}

func decodeString(v any) string {
	s, _ := v.(string)
	return s
}

// decodeInt tolerates float64 (JSON numbers), integer types, and
// numbers formatted as strings, including comma-grouped ones like
// "1,500".
func decodeInt(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}

// decodeTime tolerates time.Time, RFC3339 strings, date-only strings
// and unix-second numbers.
func decodeTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64:
		if t <= 0 {
			return time.Time{}, false
		}
		return time.Unix(int64(t), 0).UTC(), true
	case int64:
		if t <= 0 {
			return time.Time{}, false
		}
		return time.Unix(t, 0).UTC(), true
	}
	return time.Time{}, false
}
