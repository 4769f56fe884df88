package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/marqueehq/marquee/pkg/events"
	"github.com/marqueehq/marquee/pkg/log"
	"github.com/marqueehq/marquee/pkg/metrics"
	"github.com/marqueehq/marquee/pkg/remote"
	"github.com/marqueehq/marquee/pkg/snapshot"
	"github.com/marqueehq/marquee/pkg/types"
)

var (
	// ErrBookingNotFound is returned when an id is in none of the
	// three buckets.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidBucket is returned for a move target that is not a
	// known lifecycle status.
	ErrInvalidBucket = errors.New("invalid target bucket")

	// ErrFieldNotEditable is returned when an update names a field
	// operators may not change through the API.
	ErrFieldNotEditable = errors.New("field not editable")
)

// mutableFields maps the remote document fields operators may edit to
// the local setter applied after a successful remote write. Dates,
// attendee counts and status stay out: the first two feed scheduling
// and estimates, and status is owned by the lifecycle rules.
var mutableFields = map[string]func(*types.Booking, string){
	"menuPackage": func(b *types.Booking, v string) { b.MenuPackage = v },
	"eventTheme":  func(b *types.Booking, v string) { b.EventTheme = v },
	"notes":       func(b *types.Booking, v string) { b.Notes = v },
	"startTime":   func(b *types.Booking, v string) { b.StartTime = v },
	"endTime":     func(b *types.Booking, v string) { b.EndTime = v },
}

// Manager owns the in-memory three-bucket state. Every mutation
// (reconcile, scheduler tick, manual move, cancel) funnels through it,
// making it the single writer the rest of the system reads from.
type Manager struct {
	remote remote.Store
	snap   snapshot.Store
	broker *events.Broker

	mu      sync.Mutex
	buckets *types.Buckets

	logger zerolog.Logger
}

// NewManager creates a manager over the given stores. The broker may
// be nil when no event feed is wanted.
func NewManager(remoteStore remote.Store, snapStore snapshot.Store, broker *events.Broker) *Manager {
	return &Manager{
		remote:  remoteStore,
		snap:    snapStore,
		broker:  broker,
		buckets: types.NewBuckets(),
		logger:  log.WithComponent("lifecycle"),
	}
}

// Reconcile merges the remote booking list into the local snapshot.
// The snapshot and the remote list are fetched concurrently; bookings
// already known locally keep their bucket, newcomers are appended to
// pending. A remote failure aborts the merge with local state
// unchanged. Must complete before the scheduler's first tick.
func (m *Manager) Reconcile(ctx context.Context) error {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.ReconcileDuration)
	}()

	var (
		stored     *types.Buckets
		remoteList []*types.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := m.snap.Load()
		if err != nil {
			// Unreadable snapshot degrades to the empty state.
			m.logger.Warn().Err(err).Msg("snapshot load failed, starting from empty buckets")
			return nil
		}
		stored = loaded
		return nil
	})
	g.Go(func() error {
		list, err := m.remote.ListBookings(gctx)
		if err != nil {
			return fmt.Errorf("fetch remote bookings: %w", err)
		}
		remoteList = list
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.RemoteErrorsTotal.Inc()
		m.publish(events.New(events.EventRemoteUnavailable, "reconciliation aborted", nil))
		return err
	}

	if stored == nil {
		stored = types.NewBuckets()
	}

	added := 0
	for _, b := range remoteList {
		if stored.Contains(b.ID) {
			continue
		}
		if err := stored.Append(b, types.StatusPending); err != nil {
			return err
		}
		added++
	}

	m.mu.Lock()
	m.buckets = stored
	m.persistLocked()
	m.mu.Unlock()

	metrics.ReconcileCyclesTotal.Inc()
	m.logger.Info().
		Int("remote", len(remoteList)).
		Int("new", added).
		Msg("reconciliation complete")
	m.publish(events.New(events.EventBookingReconciled,
		fmt.Sprintf("%d new bookings entered pending", added), nil))
	return nil
}

// Buckets returns a deep copy of the current bucket state.
func (m *Manager) Buckets() *types.Buckets {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buckets.Clone()
}

// AllBookings returns every booking across the three buckets.
func (m *Manager) AllBookings() []*types.Booking {
	return m.Buckets().All()
}

// Move is the operator override: it relocates a booking to any
// bucket, including backward, bypassing the scheduler's date rules.
func (m *Manager) Move(id string, target types.LifecycleStatus) error {
	if !types.ValidStatus(target) {
		return fmt.Errorf("%w: %q", ErrInvalidBucket, target)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	booking := m.buckets.Remove(id)
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	from := booking.Status
	if err := m.buckets.Append(booking, target); err != nil {
		return err
	}
	m.persistLocked()

	metrics.LifecycleTransitionsTotal.WithLabelValues(string(from), string(target)).Inc()
	m.logger.Info().
		Str("booking_id", id).
		Str("from", string(from)).
		Str("to", string(target)).
		Msg("manual move")
	m.publish(events.New(events.EventBookingMoved, "operator moved booking", map[string]string{
		"booking_id": id,
		"from":       string(from),
		"to":         string(target),
	}))
	return nil
}

// UpdateField writes one editable document field to the remote store
// and mirrors it on the local copy. The remote write happens first; a
// failure leaves the local booking unchanged.
func (m *Manager) UpdateField(ctx context.Context, id, field, value string) error {
	setter, ok := mutableFields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotEditable, field)
	}

	m.mu.Lock()
	var booking *types.Booking
	for _, b := range m.buckets.All() {
		if b.ID == id {
			booking = b
			break
		}
	}
	m.mu.Unlock()
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}

	if err := m.remote.UpdateBookingField(ctx, id, field, value); err != nil {
		metrics.RemoteErrorsTotal.Inc()
		m.logger.Error().Err(err).Str("booking_id", id).Str("field", field).
			Msg("remote field update failed")
		return err
	}

	m.mu.Lock()
	setter(booking, value)
	m.persistLocked()
	m.mu.Unlock()

	m.logger.Info().Str("booking_id", id).Str("field", field).Msg("booking field updated")
	return nil
}

// Cancel deletes the booking and its attendee sub-collection from the
// remote store, then removes it from the local buckets. A remote
// failure leaves the buckets untouched.
func (m *Manager) Cancel(ctx context.Context, id string) error {
	if err := m.remote.DeleteBooking(ctx, id); err != nil {
		metrics.RemoteErrorsTotal.Inc()
		// The cascade may have partially applied; keep the id in the
		// log so an operator can re-issue the delete.
		m.logger.Error().Err(err).Str("booking_id", id).Msg("remote delete failed, booking retained locally")
		m.publish(events.New(events.EventRemoteUnavailable, "cancel failed", map[string]string{
			"booking_id": id,
		}))
		return err
	}

	m.mu.Lock()
	removed := m.buckets.Remove(id)
	if removed != nil {
		m.persistLocked()
	}
	m.mu.Unlock()

	m.logger.Info().Str("booking_id", id).Msg("booking cancelled")
	m.publish(events.New(events.EventBookingCancelled, "booking cancelled", map[string]string{
		"booking_id": id,
	}))
	return nil
}

// persistLocked saves the current buckets best-effort and refreshes
// the bucket gauges. Callers hold m.mu.
func (m *Manager) persistLocked() {
	if err := m.snap.Save(m.buckets); err != nil {
		metrics.SnapshotSaveFailuresTotal.Inc()
		m.logger.Warn().Err(err).Msg("snapshot save failed, in-memory state unaffected")
	}
	metrics.UpdateBucketGauges(m.buckets)
}

func (m *Manager) publish(e *events.Event) {
	if m.broker != nil {
		m.broker.Publish(e)
	}
}
