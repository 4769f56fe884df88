package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/marqueehq/marquee/pkg/log"
	"github.com/marqueehq/marquee/pkg/types"
)

var (
	bucketLifecycle = []byte("lifecycle")
	keyBuckets      = []byte("buckets")
)

// BoltStore implements Store on a BoltDB file.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the snapshot database in dataDir.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "marquee.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketLifecycle); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketLifecycle, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load reads the bucket state stored under the single well-known key.
// A missing key yields (nil, nil). An unreadable payload is treated
// as absent, never as a fatal error.
func (s *BoltStore) Load() (*types.Buckets, error) {
	var buckets *types.Buckets
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketLifecycle).Get(keyBuckets)
		if data == nil {
			return nil
		}

		var decoded types.Buckets
		if err := json.Unmarshal(data, &decoded); err != nil {
			logger := log.WithComponent("snapshot")
			logger.Warn().Err(err).Msg("snapshot corrupt, treating as absent")
			return nil
		}
		buckets = &decoded
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return buckets, nil
}

func (s *BoltStore) Save(buckets *types.Buckets) error {
	data, err := json.Marshal(buckets)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLifecycle).Put(keyBuckets, data)
	})
}
