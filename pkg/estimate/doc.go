/*
Package estimate converts booking records into operational quantities:
seating, catering and staff (resources), food, drinks and materials
(inventory), and per-date physical supply allocations.

Every function here is a deterministic, pure function of its booking
input. Quantities are clamped per booking, before any aggregation, so
a single malformed record with a wild attendee count cannot dominate a
venue-wide sum.

Menu-driven inventory uses an enumerated table of recognized menu
items, each contributing a fixed per-person food or drink quantity.
Unrecognized menu text contributes nothing rather than failing.
*/
package estimate
