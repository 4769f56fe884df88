/*
Package snapshot provides the durable local store for the three-bucket
lifecycle state.

The whole state is serialized as one JSON value under a single
well-known key, so a load sees either a complete consistent snapshot
or nothing. Two implementations exist: a BoltDB-backed store for
production and an in-memory store for tests.

Failure handling follows the core's error policy: a corrupt snapshot
degrades to "absent" (empty buckets) and a failed save is logged by
the caller without blocking in-memory state changes.
*/
package snapshot
