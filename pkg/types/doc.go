/*
Package types defines the shared value types for Marquee: bookings,
attendees, the three-bucket lifecycle state, and the derived forecast
and estimate shapes.

A Booking moves through exactly one of three lifecycle buckets at a
time (pending, ongoing, done). Buckets is the only mutable shared
structure in the core; it is owned by the lifecycle manager and every
mutation goes through that owner. The helpers here (Remove, Append,
Contains) keep the one-bucket-per-booking invariant local to this
package so callers cannot duplicate a booking across buckets.

Derived types (ForecastPoint, ResourceEstimate, InventoryEstimate,
SupplyAllocation) are computed on demand and never persisted.
*/
package types
