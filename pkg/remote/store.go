package remote

import (
	"context"
	"errors"

	"github.com/marqueehq/marquee/pkg/types"
)

var (
	// ErrStoreUnavailable indicates a remote operation failed; callers
	// must leave local state untouched when they see it.
	ErrStoreUnavailable = errors.New("remote store unavailable")

	// ErrNotFound indicates the booking id does not exist remotely.
	ErrNotFound = errors.New("booking not found")
)

// Store is the remote document store holding booking records and,
// per booking, a sub-collection of attendee check-ins. The store is
// the authority for record existence, not for lifecycle status.
type Store interface {
	// ListBookings returns every decodable booking. Malformed records
	// are skipped, not surfaced as errors.
	ListBookings(ctx context.Context) ([]*types.Booking, error)

	// ListAttendees returns the check-in records of one booking.
	ListAttendees(ctx context.Context, bookingID string) ([]*types.Attendee, error)

	// CreateBooking stores a new booking document and returns its id.
	CreateBooking(ctx context.Context, b *types.Booking) (string, error)

	// UpdateBookingField sets a single field on a booking document.
	UpdateBookingField(ctx context.Context, id, field string, value any) error

	// DeleteBooking removes a booking and cascades to its attendee
	// sub-collection.
	DeleteBooking(ctx context.Context, id string) error
}
