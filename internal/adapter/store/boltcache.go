package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"codectx/internal/adapter/cache"
	"codectx/internal/domain"
)

var (
	bucketAnalysis = []byte("analysis")
	bucketMeta     = []byte("meta")
)

// BoltCache is a persistent structural-analysis cache backed by bbolt. It
// lets repeated retrievals over the same workspace skip re-parsing unchanged
// files across process restarts. It is strictly an optimization layer: a
// miss or an I/O failure on read degrades to re-analysis, never to an error
// the retrieval path sees.
type BoltCache struct {
	db *bbolt.DB
}

// NewBoltCache opens (or creates) the cache database at path.
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketAnalysis, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db}, nil
}

type analysisRecord struct {
	Path      string               `json:"path"`
	Structure domain.FileStructure `json:"structure"`
}

// Get looks up the analysis for a file identity.
func (s *BoltCache) Get(path string, size, modTime int64) (domain.FileStructure, bool) {
	key := []byte(cache.Key(path, size, modTime))

	var rec analysisRecord
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAnalysis).Get(key)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil // corrupt entry degrades to a miss
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return domain.FileStructure{}, false
	}
	return rec.Structure, true
}

// Put stores the analysis for a file identity.
func (s *BoltCache) Put(path string, size, modTime int64, structure domain.FileStructure) error {
	key := []byte(cache.Key(path, size, modTime))

	rec := analysisRecord{Path: path, Structure: structure}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAnalysis).Put(key, data)
	})
}

// Count returns the number of cached analyses.
func (s *BoltCache) Count() (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketAnalysis).Stats().KeyN
		return nil
	})
	return count, err
}

// Clear drops all cached analyses.
func (s *BoltCache) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketAnalysis); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketAnalysis)
		return err
	})
}

// Close closes the underlying database.
func (s *BoltCache) Close() error {
	return s.db.Close()
}
