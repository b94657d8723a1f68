package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("tool not found")
	// ErrValidation is returned when a create request lacks required fields.
	ErrValidation = errors.New("missing required fields")
)

// StorageError wraps a backend read, parse or write failure.
type StorageError struct {
	Op      string // "read" or "write"
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s storage %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
