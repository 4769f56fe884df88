// Package forecast turns the booking set into demand series an
// operator can plan against.
//
// A series is built in three steps: bookings are grouped into period
// buckets (hour of day, raw time slot, month, or year), the per-bucket
// counts become an ordered sequence, and the smoothing package
// flattens that sequence into the trend line. Month and year series
// additionally carry one projected point beyond the observed range so
// the operator sees next period's expected demand alongside history.
//
//	bookings ──group──▶ counts ──smooth──▶ trend ──project──▶ series
//
// Series computation is pure and cheap, but the grouping walks every
// booking, so Cache keeps recent results in Redis keyed by period and
// smoothing parameters. The cache is strictly an accelerator: every
// failure path (miss, outage, undecodable entry) falls back to
// recomputation, and a nil Cache disables caching entirely.
package forecast
