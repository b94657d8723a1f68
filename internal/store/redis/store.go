// Package redis persists the catalog as a single JSON value in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/store"
)

// Store keeps the collection under one key with no TTL.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore creates a Redis backend. The client is owned by the store and
// closed by Close.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		key:    ToolsKey(prefix),
	}
}

func (s *Store) Name() string { return "redis" }

// Key returns the key the collection is stored under.
func (s *Store) Key() string { return s.key }

// Load reads the collection. A missing key is an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Tool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Tool{}, nil
		}
		return nil, fmt.Errorf("failed to get tools: %w", err)
	}
	return store.Decode(data)
}

// Save replaces the stored collection.
func (s *Store) Save(ctx context.Context, tools []domain.Tool) error {
	data, err := store.Encode(tools)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save tools: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }
