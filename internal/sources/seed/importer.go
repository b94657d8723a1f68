package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// Import creates inputs through store when the catalog is empty and returns
// how many records were created. Creates prepend, so inputs are submitted in
// reverse to leave the catalog in file order. A non-empty catalog is left
// alone and Import returns 0.
//
// Inputs rejected by validation are logged and skipped; any other error stops
// the import.
func Import(ctx context.Context, store catalog.Store, inputs []domain.CreateInput, log logger.Logger) (int, error) {
	existing, err := store.List(ctx, domain.Filter{})
	if err != nil {
		return 0, fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if len(existing) > 0 {
		log.Info("catalog not empty, skipping seed", logger.Int("records", len(existing)))
		return 0, nil
	}

	created := 0
	for i := len(inputs) - 1; i >= 0; i-- {
		in := inputs[i]
		if _, err := store.Create(ctx, in); err != nil {
			if errors.Is(err, catalog.ErrValidation) {
				log.Warn("skipping invalid seed entry",
					logger.String("name", in.Name),
					logger.Error(err))
				continue
			}
			return created, fmt.Errorf("failed to seed %q: %w", in.Name, err)
		}
		created++
	}

	log.Info("catalog seeded", logger.Int("records", created))
	return created, nil
}

// LoadAndImport reads the seed file at path and imports it.
func LoadAndImport(ctx context.Context, path string, store catalog.Store, log logger.Logger) (int, error) {
	file, err := NewLoader(path).Load()
	if err != nil {
		return 0, err
	}
	return Import(ctx, store, Map(file), log)
}
