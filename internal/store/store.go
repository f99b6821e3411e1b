// Package store provides a thin bbolt wrapper for fredkit's local data store.
//
// The store is an intentional data accumulator, not a transparent HTTP
// cache. Results are written explicitly (--store on fetch commands) and read
// back by the store commands. No TTL, no auto-invalidation.
//
// Buckets:
//
//	results  fetched responses keyed by request (path?params, no api_key)
//	_meta    internal: schema version, created_at
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/model"
)

// Current schema version. Bump when bucket layout or key format changes.
const schemaVersion = 1

// Bucket name constants.
var (
	bucketResults  = []byte("results")
	bucketInternal = []byte("_meta")
)

// AllBuckets lists every user-facing bucket for stats and clear operations.
var AllBuckets = []string{"results"}

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path.
// Parent directories are created automatically.
// Runs schema migrations on every open.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open database.
func (s *Store) Path() string {
	return s.db.Path()
}

// ─── Migrations ───────────────────────────────────────────────────────────────

// migrate ensures all buckets exist and schema is current.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketResults, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

// ─── Results ──────────────────────────────────────────────────────────────────

// Record is the on-disk envelope of a stored response.
type Record struct {
	Key       string        `json:"key"`
	Kind      string        `json:"kind"`
	Command   string        `json:"command"`
	FetchedAt time.Time     `json:"fetched_at"`
	Response  fred.Response `json:"response"`
}

// Summary describes a stored record without its entities.
type Summary struct {
	Key       string    `json:"key"`
	Kind      string    `json:"kind"`
	Root      string    `json:"root"`
	Items     int       `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

func newRecord(r *model.Result) (Record, error) {
	if r.Response == nil {
		return Record{}, fmt.Errorf("result %q has no response", r.Request)
	}
	if !r.Response.Good() {
		return Record{}, fmt.Errorf("refusing to store failed result %q: %s", r.Request, r.Response.Error)
	}
	return Record{
		Key:       r.Request,
		Kind:      r.Kind,
		Command:   r.Command,
		FetchedAt: time.Now().UTC(),
		Response:  *r.Response,
	}, nil
}

// Put stores a successful result under its request key, replacing any
// earlier record for the same request.
func (s *Store) Put(r *model.Result) error {
	return s.PutBatch([]*model.Result{r})
}

// PutBatch stores several results in a single write transaction.
func (s *Store) PutBatch(results []*model.Result) error {
	type kv struct{ k, v []byte }
	entries := make([]kv, 0, len(results))
	for _, r := range results {
		rec, err := newRecord(r)
		if err != nil {
			return err
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding result %s: %w", rec.Key, err)
		}
		entries = append(entries, kv{[]byte(rec.Key), b})
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		for _, e := range entries {
			if err := b.Put(e.k, e.v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a record by key.
// Returns (record, true, nil) if found, (zero, false, nil) if not found.
func (s *Store) Get(key string) (Record, bool, error) {
	var rec Record
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketResults).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return rec, found, nil
}

// List returns summaries of the records whose key starts with prefix, in
// key order. Pass prefix="" to list everything.
func (s *Store) List(prefix string) ([]Summary, error) {
	var out []Summary
	p := []byte(prefix)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketResults).Cursor()
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding %s: %w", k, err)
			}
			out = append(out, Summary{
				Key:       rec.Key,
				Kind:      rec.Kind,
				Root:      rec.Response.Result.Name,
				Items:     len(rec.Response.Entities),
				FetchedAt: rec.FetchedAt,
			})
		}
		return nil
	})
	return out, err
}

// Delete removes the record stored under key. It reports whether the key
// existed.
func (s *Store) Delete(key string) (bool, error) {
	existed := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		existed = b.Get([]byte(key)) != nil
		return b.Delete([]byte(key))
	})
	return existed, err
}

// ─── Stats & Maintenance ──────────────────────────────────────────────────────

// BucketStats holds row count and byte size for a single bucket.
type BucketStats struct {
	Name  string
	Count int
	Bytes int64
}

// Stats returns row counts and approximate sizes for all buckets.
func (s *Store) Stats() ([]BucketStats, error) {
	var stats []BucketStats
	err := s.db.View(func(tx *bolt.Tx) error {
		for _, name := range AllBuckets {
			b := tx.Bucket([]byte(name))
			if b == nil {
				continue
			}
			var count int
			var size int64
			_ = b.ForEach(func(k, v []byte) error {
				count++
				size += int64(len(k) + len(v))
				return nil
			})
			stats = append(stats, BucketStats{Name: name, Count: count, Bytes: size})
		}
		return nil
	})
	return stats, err
}

// ClearBucket deletes all entries in the named bucket.
func (s *Store) ClearBucket(name string) error {
	bname := []byte(name)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bname); err != nil {
			return fmt.Errorf("clearing bucket %s: %w", name, err)
		}
		_, err := tx.CreateBucket(bname)
		return err
	})
}

// ClearAll deletes all entries from every user-facing bucket.
func (s *Store) ClearAll() error {
	for _, name := range AllBuckets {
		if err := s.ClearBucket(name); err != nil {
			return err
		}
	}
	return nil
}
