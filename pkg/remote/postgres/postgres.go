// Package postgres backs the remote booking store with a Postgres
// jsonb document table, one row per booking document and a child
// table for attendee check-ins.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marqueehq/marquee/pkg/log"
	"github.com/marqueehq/marquee/pkg/remote"
	"github.com/marqueehq/marquee/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS attendees (
	id         TEXT PRIMARY KEY,
	booking_id TEXT NOT NULL REFERENCES bookings(id),
	doc        JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attendees_booking ON attendees(booking_id);
`

// Store implements remote.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects, ensures the schema exists, and returns the store.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool, for tests and shared pools.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ListBookings(ctx context.Context) ([]*types.Booking, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, doc FROM bookings ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list bookings", err)
	}
	defer rows.Close()

	logger := log.WithComponent("remote.postgres")
	var bookings []*types.Booking
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, wrapErr("scan booking", err)
		}

		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			logger.Warn().Str("booking_id", id).Err(err).Msg("skipping undecodable booking document")
			continue
		}

		b, err := remote.DecodeBooking(id, doc)
		if err != nil {
			logger.Warn().Str("booking_id", id).Err(err).Msg("skipping malformed booking")
			continue
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list bookings", err)
	}
	return bookings, nil
}

func (s *Store) ListAttendees(ctx context.Context, bookingID string) ([]*types.Attendee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, doc FROM attendees WHERE booking_id = $1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, wrapErr("list attendees", err)
	}
	defer rows.Close()

	logger := log.WithBookingID(bookingID)
	var attendees []*types.Attendee
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, wrapErr("scan attendee", err)
		}

		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			logger.Warn().Str("attendee_id", id).Err(err).Msg("skipping undecodable attendee document")
			continue
		}

		a, err := remote.DecodeAttendee(id, doc)
		if err != nil {
			logger.Warn().Str("attendee_id", id).Err(err).Msg("skipping malformed attendee")
			continue
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list attendees", err)
	}
	return attendees, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *types.Booking) (string, error) {
	id := b.ID
	if id == "" {
		id = uuid.New().String()
	}

	doc, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal booking: %w", err)
	}
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO bookings (id, doc) VALUES ($1, $2)`, id, doc); err != nil {
		return "", wrapErr("create booking", err)
	}
	return id, nil
}

func (s *Store) UpdateBookingField(ctx context.Context, id, field string, value any) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal field value: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE bookings SET doc = jsonb_set(doc, ARRAY[$2], $3::jsonb, true) WHERE id = $1`,
		id, field, val)
	if err != nil {
		return wrapErr("update booking field", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update booking field: %w", remote.ErrNotFound)
	}
	return nil
}

// DeleteBooking cascades in two sequential statements, attendees
// first, matching the collaborator contract. A failure between the
// two leaves an attendee-less booking behind; the caller logs the id
// so an operator can re-issue the delete.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM attendees WHERE booking_id = $1`, id); err != nil {
		return wrapErr("delete attendees", err)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete booking: %w", remote.ErrNotFound)
	}
	return nil
}

// wrapErr maps database failures onto the remote error taxonomy and
// tags them with the operation name.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, remote.ErrNotFound)
	}
	return fmt.Errorf("%s: %v: %w", op, err, remote.ErrStoreUnavailable)
}
