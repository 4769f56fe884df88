package metrics

import (
	"github.com/marqueehq/marquee/pkg/types"
)

// UpdateBucketGauges refreshes the per-bucket booking gauges from a
// bucket snapshot. Called by the lifecycle manager after every
// mutation rather than on a polling interval, since the manager is
// the single writer.
func UpdateBucketGauges(b *types.Buckets) {
	BookingsTotal.WithLabelValues(string(types.StatusPending)).Set(float64(len(b.Pending)))
	BookingsTotal.WithLabelValues(string(types.StatusOngoing)).Set(float64(len(b.Ongoing)))
	BookingsTotal.WithLabelValues(string(types.StatusDone)).Set(float64(len(b.Done)))
}
