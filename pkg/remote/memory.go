package remote

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/marqueehq/marquee/pkg/types"
)

// MemoryStore is an in-memory Store used in tests and when running
// without a configured document store. It can be flipped into a
// failing state to exercise the StoreUnavailable paths.
type MemoryStore struct {
	mu        sync.Mutex
	bookings  map[string]*types.Booking
	attendees map[string][]*types.Attendee
	fail      bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings:  make(map[string]*types.Booking),
		attendees: make(map[string][]*types.Attendee),
	}
}

// SetUnavailable makes every subsequent operation fail with
// ErrStoreUnavailable until called again with false.
func (m *MemoryStore) SetUnavailable(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

func (m *MemoryStore) ListBookings(ctx context.Context) ([]*types.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreUnavailable
	}

	out := make([]*types.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		dup := *b
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListAttendees(ctx context.Context, bookingID string) ([]*types.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreUnavailable
	}
	return append([]*types.Attendee(nil), m.attendees[bookingID]...), nil
}

func (m *MemoryStore) CreateBooking(ctx context.Context, b *types.Booking) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", ErrStoreUnavailable
	}

	id := b.ID
	if id == "" {
		id = uuid.New().String()
	}
	dup := *b
	dup.ID = id
	m.bookings[id] = &dup
	return id, nil
}

// AddAttendee seeds an attendee check-in record; test helper.
func (m *MemoryStore) AddAttendee(bookingID string, a *types.Attendee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendees[bookingID] = append(m.attendees[bookingID], a)
}

func (m *MemoryStore) UpdateBookingField(ctx context.Context, id, field string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return ErrStoreUnavailable
	}

	b, ok := m.bookings[id]
	if !ok {
		return fmt.Errorf("update booking field: %w", ErrNotFound)
	}
	switch field {
	case "menuPackage":
		b.MenuPackage, _ = value.(string)
	case "eventTheme":
		b.EventTheme, _ = value.(string)
	case "notes":
		b.Notes, _ = value.(string)
	case "startTime":
		b.StartTime, _ = value.(string)
	case "endTime":
		b.EndTime, _ = value.(string)
	case "scannedCount":
		if n, ok := value.(int); ok {
			b.ScannedCount = n
		}
	default:
		return fmt.Errorf("update booking field: unsupported field %q", field)
	}
	return nil
}

func (m *MemoryStore) DeleteBooking(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return ErrStoreUnavailable
	}
	if _, ok := m.bookings[id]; !ok {
		return fmt.Errorf("delete booking: %w", ErrNotFound)
	}
	delete(m.attendees, id)
	delete(m.bookings, id)
	return nil
}
