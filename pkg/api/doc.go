/*
Package api implements the operator-facing HTTP API.

Every endpoint reads through the lifecycle manager, which owns the
three-bucket booking state; the API never touches the remote store or
the snapshot directly.

# Architecture

	┌──────────────── OPERATOR ────────────────┐
	│   dashboard / curl / monitoring scraper   │
	└───────────────────┬──────────────────────┘
	                    │ HTTP
	┌───────────────────▼──────────────────────┐
	│           gin router (pkg/api)            │
	│  - request-id + logging + metrics         │
	│  - /bookings       bucket state + moves   │
	│  - /forecast       cached demand series   │
	│  - /estimates/*    resources, inventory,  │
	│                    supplies               │
	│  - /pricing        demand multiplier      │
	└───────────────────┬──────────────────────┘
	                    │
	┌───────────────────▼──────────────────────┐
	│        lifecycle.Manager (single writer)  │
	└──────────────────────────────────────────┘

# Endpoints

	GET    /healthz                liveness probe
	GET    /metrics                Prometheus exposition
	GET    /bookings               all buckets, or one via ?bucket=
	POST   /bookings/:id/move      operator override between buckets
	PATCH  /bookings/:id           edit one document field
	DELETE /bookings/:id           cancel (remote delete first)
	GET    /forecast               demand series via ?period=
	GET    /pricing                price multiplier for a period
	GET    /estimates/resources    per-booking (?id=) or per event type
	GET    /estimates/inventory    per-booking (?id=) or per event type
	GET    /estimates/supplies     physical supplies per event date

Mutating endpoints invalidate the forecast cache so the next read
reflects the new booking set.
*/
package api
