// Package file persists the catalog as a single JSON array on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/store"
)

// Backend reads and rewrites the whole file on every call.
type Backend struct {
	path string
}

// New creates a file backend for path. Call Init before serving.
func New(path string) *Backend {
	return &Backend{path: path}
}

func (b *Backend) Name() string { return "file" }

// Path returns the backing file location.
func (b *Backend) Path() string { return b.path }

// Init creates the parent directory and, if the file is absent, writes an
// empty collection. An existing file is left untouched.
func (b *Backend) Init() error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(b.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat data file: %w", err)
	}
	if err := os.WriteFile(b.path, store.EmptyCollection, 0o644); err != nil {
		return fmt.Errorf("failed to initialize data file: %w", err)
	}
	return nil
}

// Load reads the collection. A missing file is an empty collection.
func (b *Backend) Load(ctx context.Context) ([]domain.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Tool{}, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	return store.Decode(data)
}

// Save writes the collection to a temporary sibling and renames it over the
// data file, so readers never see a partial write.
func (b *Backend) Save(ctx context.Context, tools []domain.Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := store.Encode(tools)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".tools-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func (b *Backend) Close() error { return nil }
