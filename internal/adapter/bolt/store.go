package bolt

import (
	"bytes"
	"context"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"arena-notices/internal/core/port"
)

var bucketCaps = []byte("frequency_caps")

// Store implements port.ViewerStore using BoltDB. Each viewer gets a
// nested bucket under the top-level caps bucket, so the documented
// last_display::/display_count:: key schema holds within a namespace.
type Store struct {
	db *bbolt.DB
}

// NewStore creates the caps bucket if needed and returns the store.
func NewStore(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCaps)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create caps bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Viewer returns the key/value namespace for one viewer.
func (s *Store) Viewer(viewerID string) port.KeyValue {
	return &viewerKV{db: s.db, viewer: []byte(viewerID)}
}

type viewerKV struct {
	db     *bbolt.DB
	viewer []byte
}

func (v *viewerKV) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := v.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCaps).Bucket(v.viewer)
		if b == nil {
			return nil
		}
		if raw := b.Get([]byte(key)); raw != nil {
			value = string(raw)
			found = true
		}
		return nil
	})
	return value, found, err
}

func (v *viewerKV) Set(ctx context.Context, key, value string) error {
	return v.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(bucketCaps).CreateBucketIfNotExists(v.viewer)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

func (v *viewerKV) KeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := v.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCaps).Bucket(v.viewer)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}
