/*
Package remote defines the boundary to the document store that owns
booking records.

The store is trusted for record existence only. Lifecycle status lives
with the local manager, so any status-like fields on remote documents
are discarded at decode time.

Remote documents are loosely typed: fields may be absent, dates may
arrive as RFC3339 strings or unix seconds, and counts may arrive as
comma-formatted strings. DecodeBooking performs the single validating
pass that isolates the rest of the core from that shape variance; a
record either becomes a well-typed Booking or a MalformedBookingError
and is skipped downstream.

Every Store operation can fail with ErrStoreUnavailable. Callers must
not mutate local bucket state when it is returned.
*/
package remote
