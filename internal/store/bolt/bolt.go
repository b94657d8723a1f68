// Package bolt persists the catalog as one JSON document inside a bbolt file.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/store"
)

var (
	bucketTools   = []byte("tools")
	keyCollection = []byte("collection")
)

// Backend stores the whole collection under a single key.
type Backend struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) the database at path and ensures the bucket exists.
func Open(path string) (*Backend, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("bolt path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure bolt dir: %w", err)
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTools)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure bolt bucket: %w", err)
	}
	return &Backend{db: db, path: trimmed}, nil
}

func (b *Backend) Name() string { return "bolt" }

func (b *Backend) Load(ctx context.Context) ([]domain.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketTools)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(keyCollection); v != nil {
			// v is only valid for the life of the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read bolt collection: %w", err)
	}
	return store.Decode(data)
}

func (b *Backend) Save(ctx context.Context, tools []domain.Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := store.Encode(tools)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketTools)
		if err != nil {
			return err
		}
		return bucket.Put(keyCollection, data)
	})
	if err != nil {
		return fmt.Errorf("write bolt collection: %w", err)
	}
	return nil
}

func (b *Backend) Close() error { return b.db.Close() }
