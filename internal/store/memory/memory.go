// Package memory keeps the catalog in process memory. It is used by tests and
// for ephemeral runs where nothing should touch disk.
package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// Backend stores a private copy of the collection.
type Backend struct {
	mu      sync.RWMutex
	tools   []domain.Tool
	loadErr error
	saveErr error
	saves   int
}

// New creates a memory backend seeded with a copy of tools.
func New(tools ...domain.Tool) *Backend {
	return &Backend{tools: domain.CloneAll(tools)}
}

func (b *Backend) Name() string { return "memory" }

func (b *Backend) Load(ctx context.Context) ([]domain.Tool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return domain.CloneAll(b.tools), nil
}

func (b *Backend) Save(ctx context.Context, tools []domain.Tool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.saveErr != nil {
		return b.saveErr
	}
	b.tools = domain.CloneAll(tools)
	b.saves++
	return nil
}

func (b *Backend) Close() error { return nil }

// FailLoad makes every subsequent Load return err. Pass nil to recover.
func (b *Backend) FailLoad(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadErr = err
}

// FailSave makes every subsequent Save return err. Pass nil to recover.
func (b *Backend) FailSave(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}

// Saves returns how many times the collection has been written.
func (b *Backend) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}

// Snapshot returns a copy of the stored collection.
func (b *Backend) Snapshot() []domain.Tool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return domain.CloneAll(b.tools)
}
