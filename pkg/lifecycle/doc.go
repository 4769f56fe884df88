/*
Package lifecycle reconciles remote booking records with the durable
local snapshot and advances each booking through its three-state
lifecycle.

# Architecture

	┌──────────────┐   concurrent    ┌──────────────┐
	│ Remote Store │──── fetch ─────▶│              │
	└──────────────┘                 │  Reconcile   │
	┌──────────────┐                 │   (merge)    │
	│   Snapshot   │──── load ──────▶│              │
	└──────────────┘                 └──────┬───────┘
	       ▲                                │ newcomers → pending,
	       │ persist                        │ known ids keep bucket
	       └────────────────────────────────┤
	                                        ▼
	                          ┌──────────────────────────┐
	                          │   Scheduler tick (timer) │
	                          │ pending ──▶ ongoing      │ event day == today
	                          │ pending ──▶ done         │ event day <  today
	                          │ ongoing ──▶ done         │ event day <  today
	                          └──────────────────────────┘

The Manager is the single owner of the mutable bucket state; the
reconciler, the scheduler tick and the operator actions (Move,
UpdateField, Cancel)
all mutate through it under one mutex, which realizes the exclusive
ownership the design calls for without finer-grained locking.

Reconciliation trusts the remote store for record existence only:
bookings already known locally keep whatever bucket an operator or a
previous tick placed them in, and newcomers always start in pending
regardless of any status-like field on the remote document.

Ticks are idempotent. After every eligible booking has moved, running
the same tick again is a no-op, and a tick completes its mutation and
persistence before the next one can fire. The done bucket is terminal
for automatic scheduling; only an operator Move can take a booking
backward.
*/
package lifecycle
