/*
Package metrics exposes Prometheus instrumentation for the booking
core: per-bucket booking gauges, lifecycle transition counters,
scheduler tick and reconcile cycle counters, store failure counters,
and API request metrics.

All collectors are registered at init time. Handler() returns the
/metrics HTTP handler, mounted on the operator API router.

Timer Helper:

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.ReconcileDuration)
*/
package metrics
