package lifecycle

import (
	"sync"
	"time"

	"github.com/marqueehq/marquee/pkg/events"
	"github.com/marqueehq/marquee/pkg/metrics"
	"github.com/marqueehq/marquee/pkg/types"
)

// Scheduler drives the automatic lifecycle transitions on a fixed
// interval. Ticks are synchronous and never overlap; the recurring
// timer is cancelled by Stop.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler ticking at the given interval with
// the wall clock.
func NewScheduler(mgr *Manager, interval time.Duration) *Scheduler {
	return NewSchedulerWithClock(mgr, interval, time.Now)
}

// NewSchedulerWithClock creates a scheduler with an injected clock,
// used by tests to drive date transitions without real time.
func NewSchedulerWithClock(mgr *Manager, interval time.Duration, now func() time.Time) *Scheduler {
	return &Scheduler{
		manager:  mgr,
		interval: interval,
		now:      now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the tick loop.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop cancels the recurring timer. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-s.stopCh:
			return
		}
	}
}

// Tick evaluates the date rules once against the current clock.
// Running it twice without a clock change produces no further
// transitions.
func (s *Scheduler) Tick() {
	metrics.SchedulerTicksTotal.Inc()
	s.manager.advance(s.now())
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// advance applies the automatic transition rules for the instant now:
//
//	pending: event day == today -> ongoing
//	pending: event day <  today -> done   (catch-up)
//	ongoing: event day <  today -> done
//
// done is terminal for automatic scheduling. Bookings without a
// usable event date are left where they are.
func (m *Manager) advance(now time.Time) {
	today := midnight(now)

	m.mu.Lock()

	type transition struct {
		booking *types.Booking
		from    types.LifecycleStatus
		to      types.LifecycleStatus
	}
	var moves []transition

	for _, b := range m.buckets.Pending {
		if b.EventDate.IsZero() {
			continue
		}
		eventDay := midnight(b.EventDate.In(now.Location()))
		switch {
		case eventDay.Equal(today):
			moves = append(moves, transition{b, types.StatusPending, types.StatusOngoing})
		case eventDay.Before(today):
			moves = append(moves, transition{b, types.StatusPending, types.StatusDone})
		}
	}
	for _, b := range m.buckets.Ongoing {
		if b.EventDate.IsZero() {
			continue
		}
		eventDay := midnight(b.EventDate.In(now.Location()))
		if eventDay.Before(today) {
			moves = append(moves, transition{b, types.StatusOngoing, types.StatusDone})
		}
	}

	for _, mv := range moves {
		m.buckets.Remove(mv.booking.ID)
		// Append only fails on an invalid status, which cannot happen
		// for the fixed transitions above.
		_ = m.buckets.Append(mv.booking, mv.to)
		metrics.LifecycleTransitionsTotal.WithLabelValues(string(mv.from), string(mv.to)).Inc()
		m.logger.Info().
			Str("booking_id", mv.booking.ID).
			Str("from", string(mv.from)).
			Str("to", string(mv.to)).
			Time("event_date", mv.booking.EventDate).
			Msg("automatic transition")
	}

	if len(moves) > 0 {
		m.persistLocked()
	}
	m.mu.Unlock()

	for _, mv := range moves {
		eventType := events.EventBookingMoved
		if mv.to == types.StatusDone {
			eventType = events.EventBookingDone
		}
		m.publish(events.New(eventType, "automatic transition", map[string]string{
			"booking_id": mv.booking.ID,
			"from":       string(mv.from),
			"to":         string(mv.to),
		}))
	}
}
