package catalog

import (
	"context"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// Store is the catalog contract used by the HTTP layer and the seeder.
type Store interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Tool, error)
	Get(ctx context.Context, id string) (domain.Tool, error)
	Create(ctx context.Context, in domain.CreateInput) (domain.Tool, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Tool, error)
	Delete(ctx context.Context, id string) error
}

// Backend persists the whole collection as one unit.
//
// Load must return an empty, non-nil slice when nothing has been stored yet.
// Save replaces the stored collection entirely.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]domain.Tool, error)
	Save(ctx context.Context, tools []domain.Tool) error
	Close() error
}

// Observer is notified of the collection size after each successful load or save.
type Observer interface {
	ObserveRecords(n int)
}
