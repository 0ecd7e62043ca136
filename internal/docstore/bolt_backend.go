package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var collectionsBucket = []byte("collections")

// BoltBackend stores every collection as one key in a bbolt bucket.
type BoltBackend struct {
	db *bbolt.DB
}

// NewBoltBackend opens (or creates) the bbolt database at path.
func NewBoltBackend(path string, timeout time.Duration) (*BoltBackend, error) {
	if path == "" {
		return nil, errors.New("bolt path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bolt directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create collections bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

// Kind implements Backend.
func (b *BoltBackend) Kind() string { return "bolt" }

// Load implements Backend.
func (b *BoltBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(collectionsBucket).Get([]byte(collection))
		if v == nil {
			return ErrNotExist
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save implements Backend.
func (b *BoltBackend) Save(ctx context.Context, collection string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(collectionsBucket).Put([]byte(collection), data)
	}); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Ping implements Backend.
func (b *BoltBackend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(collectionsBucket) == nil {
			return errors.New("collections bucket missing")
		}
		return nil
	})
}

// Close implements Backend.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
