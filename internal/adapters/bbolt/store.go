// Package bbolt implements the ports.ResultCache interface using bbolt (embedded B+ tree).
// Each project gets its own top-level bucket. Within that bucket, a "results"
// sub-bucket maps file paths to encoded review results. Writes are transactional:
// a crash mid-write cannot corrupt previously committed data.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	"github.com/corey/reviewbot/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var bucketResults = []byte("results")

// Store implements ports.ResultCache backed by bbolt.
type Store struct {
	db *bolt.DB
}

var _ ports.ResultCache = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult stores the result for one file, replacing any prior entry.
// Concurrent callers are coalesced into shared transactions by db.Batch,
// so the fn below may run more than once and must stay idempotent.
func (s *Store) SaveResult(projectID, path string, result *ports.CachedResult) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}
	data, err := encodeResult(result)
	if err != nil {
		return err
	}
	return s.db.Batch(func(tx *bolt.Tx) error {
		proj, err := tx.CreateBucketIfNotExists([]byte(projectID))
		if err != nil {
			return err
		}
		rb, err := proj.CreateBucketIfNotExists(bucketResults)
		if err != nil {
			return err
		}
		return rb.Put([]byte(path), data)
	})
}

// LoadResult retrieves the result for one file.
// Returns nil, nil if nothing is cached, or the entry was written by an
// incompatible version.
func (s *Store) LoadResult(projectID, path string) (*ports.CachedResult, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		rb := resultsBucket(tx, projectID)
		if rb == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := rb.Get([]byte(path)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt view: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	result, err := decodeResult(data)
	if errors.Is(err, errUnknownVersion) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return result, nil
}

// CountResults returns how many files have cached results for a project.
func (s *Store) CountResults(projectID string) (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		if rb := resultsBucket(tx, projectID); rb != nil {
			n = rb.Stats().KeyN
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bbolt view: %w", err)
	}
	return n, nil
}

// DeleteProject removes all cached results for a project.
// Idempotent: deleting a nonexistent project is not an error.
func (s *Store) DeleteProject(projectID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(projectID)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(projectID))
	})
}

func resultsBucket(tx *bolt.Tx, projectID string) *bolt.Bucket {
	proj := tx.Bucket([]byte(projectID))
	if proj == nil {
		return nil
	}
	return proj.Bucket(bucketResults)
}
