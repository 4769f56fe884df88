package types

import (
	"fmt"
	"time"
)

// Booking represents a reservation for an event at the venue.
// The remote document store owns the record; the lifecycle manager
// owns the Status field.
type Booking struct {
	ID            string    `json:"id"`
	Name          string    `json:"name,omitempty"`
	EventType     string    `json:"eventType,omitempty"`
	EventTheme    string    `json:"eventTheme,omitempty"`
	MenuPackage   string    `json:"menuPackage,omitempty"`
	EventDate     time.Time `json:"eventDate"`
	StartTime     string    `json:"startTime,omitempty"` // "HH:MM", may be empty
	EndTime       string    `json:"endTime,omitempty"`
	NumAttendees  int       `json:"numAttendees"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Email         string    `json:"email,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ScannedCount  int       `json:"scannedCount"`
	Status        LifecycleStatus `json:"status,omitempty"`
}

// Attendee is a check-in record in a booking's sub-collection.
type Attendee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NumPeople int       `json:"numPeople"`
	ScannedAt time.Time `json:"scannedAt"`
}

// LifecycleStatus is the stage a booking currently occupies.
type LifecycleStatus string

const (
	StatusPending LifecycleStatus = "pending"
	StatusOngoing LifecycleStatus = "ongoing"
	StatusDone    LifecycleStatus = "done"
)

// ValidStatus reports whether s names one of the three lifecycle buckets.
func ValidStatus(s LifecycleStatus) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusDone:
		return true
	}
	return false
}

// Buckets holds the three lifecycle lists. A booking id appears in at
// most one bucket at a time.
type Buckets struct {
	Pending []*Booking `json:"pending"`
	Ongoing []*Booking `json:"ongoing"`
	Done    []*Booking `json:"done"`
}

// NewBuckets returns an empty three-bucket state with non-nil slices.
func NewBuckets() *Buckets {
	return &Buckets{
		Pending: []*Booking{},
		Ongoing: []*Booking{},
		Done:    []*Booking{},
	}
}

// All returns every booking across the three buckets.
func (b *Buckets) All() []*Booking {
	all := make([]*Booking, 0, len(b.Pending)+len(b.Ongoing)+len(b.Done))
	all = append(all, b.Pending...)
	all = append(all, b.Ongoing...)
	all = append(all, b.Done...)
	return all
}

// Contains reports whether any bucket holds a booking with the given id.
func (b *Buckets) Contains(id string) bool {
	for _, bk := range b.All() {
		if bk.ID == id {
			return true
		}
	}
	return false
}

// Bucket returns the slice for the given status.
func (b *Buckets) Bucket(s LifecycleStatus) []*Booking {
	switch s {
	case StatusPending:
		return b.Pending
	case StatusOngoing:
		return b.Ongoing
	case StatusDone:
		return b.Done
	}
	return nil
}

// Remove deletes the booking with the given id from every bucket and
// returns it, or nil if no bucket held it.
func (b *Buckets) Remove(id string) *Booking {
	var removed *Booking
	filter := func(list []*Booking) []*Booking {
		out := list[:0]
		for _, bk := range list {
			if bk.ID == id {
				removed = bk
				continue
			}
			out = append(out, bk)
		}
		return out
	}
	b.Pending = filter(b.Pending)
	b.Ongoing = filter(b.Ongoing)
	b.Done = filter(b.Done)
	return removed
}

// Append adds a booking to the bucket for the given status and stamps
// the booking's Status field to match.
func (b *Buckets) Append(bk *Booking, s LifecycleStatus) error {
	if !ValidStatus(s) {
		return fmt.Errorf("invalid lifecycle status: %q", s)
	}
	bk.Status = s
	switch s {
	case StatusPending:
		b.Pending = append(b.Pending, bk)
	case StatusOngoing:
		b.Ongoing = append(b.Ongoing, bk)
	case StatusDone:
		b.Done = append(b.Done, bk)
	}
	return nil
}

// Clone returns a deep copy safe to hand to other goroutines.
func (b *Buckets) Clone() *Buckets {
	cp := func(list []*Booking) []*Booking {
		out := make([]*Booking, len(list))
		for i, bk := range list {
			dup := *bk
			out[i] = &dup
		}
		return out
	}
	return &Buckets{
		Pending: cp(b.Pending),
		Ongoing: cp(b.Ongoing),
		Done:    cp(b.Done),
	}
}

// ForecastPoint is one period of a demand series. Projected marks
// synthetic points extrapolated beyond the observed range.
type ForecastPoint struct {
	Period    string  `json:"period"`
	RawCount  int     `json:"rawCount"`
	Smoothed  float64 `json:"smoothedValue"`
	Projected bool    `json:"projected"`
}

// ResourceEstimate holds per-booking operational quantities.
type ResourceEstimate struct {
	Seating  int `json:"seating"`
	Catering int `json:"catering"`
	Staff    int `json:"staff"`
}

// InventoryEstimate holds per-booking consumable quantities.
type InventoryEstimate struct {
	Food      int     `json:"food"`
	Drinks    int     `json:"drinks"`
	Materials float64 `json:"materials"`
}

// SupplyAllocation is the physical supply count needed for one event
// date, summed across that date's bookings.
type SupplyAllocation struct {
	Chairs   int `json:"chairs"`
	Tables   int `json:"tables"`
	Plates   int `json:"plates"`
	Bowls    int `json:"bowls"`
	Napkins  int `json:"napkins"`
	Utensils int `json:"utensils"`
}
