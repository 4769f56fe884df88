package snapshot

import (
	"github.com/marqueehq/marquee/pkg/types"
)

// Store persists the three-bucket lifecycle state across restarts.
// Writes are best-effort: a save failure is logged by the caller and
// never blocks in-memory state changes.
type Store interface {
	// Load returns the persisted bucket state, or (nil, nil) when no
	// snapshot exists. A corrupt snapshot is treated as absent.
	Load() (*types.Buckets, error)

	// Save persists the bucket state as the sole value under the
	// store's well-known key.
	Save(*types.Buckets) error

	Close() error
}
