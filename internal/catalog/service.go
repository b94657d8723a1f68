package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// IDLength is the length of minted record ids.
const IDLength = 10

// Service implements Store as read-whole, mutate, write-whole over a Backend.
// A single mutex serializes every operation within the process, so two
// concurrent mutations can no longer drop each other's effect.
type Service struct {
	mu       sync.Mutex
	backend  Backend
	logger   logger.Logger
	validate *validator.Validate
	newID    func() (string, error)
	observer Observer
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the random id source. Used by tests.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newID = fn }
}

// WithObserver registers a collection-size observer (metrics).
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates a catalog service over backend.
func NewService(backend Backend, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		logger:   log,
		validate: validator.New(),
		newID:    NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID mints a URL-safe random identifier of IDLength characters.
// Collisions are not checked.
func NewID() (string, error) {
	return gonanoid.New(IDLength)
}

// BackendName reports which backend persists the collection.
func (s *Service) BackendName() string { return s.backend.Name() }

// List returns the records matching filter, in collection order.
func (s *Service) List(ctx context.Context, filter domain.Filter) ([]domain.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tools, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(tools), nil
}

// Count returns the size of the collection.
func (s *Service) Count(ctx context.Context) (int, error) {
	tools, err := s.List(ctx, domain.Filter{})
	if err != nil {
		return 0, err
	}
	return len(tools), nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tools, err := s.load(ctx)
	if err != nil {
		return domain.Tool{}, err
	}
	idx := domain.IndexOf(tools, id)
	if idx == -1 {
		return domain.Tool{}, ErrNotFound
	}
	return tools[idx].Clone(), nil
}

// Create validates in, mints an id and prepends the new record.
func (s *Service) Create(ctx context.Context, in domain.CreateInput) (domain.Tool, error) {
	if err := s.validate.Struct(in); err != nil {
		return domain.Tool{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := s.newID()
	if err != nil {
		return domain.Tool{}, fmt.Errorf("failed to mint id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tools, err := s.load(ctx)
	if err != nil {
		return domain.Tool{}, err
	}

	tool := in.Tool(id)
	tools = append([]domain.Tool{tool}, tools...)
	if err := s.save(ctx, tools); err != nil {
		return domain.Tool{}, err
	}

	s.logger.Debug("tool created",
		logger.String("id", tool.ID),
		logger.String("name", tool.Name))
	return tool.Clone(), nil
}

// Update merges patch into the record with the given id.
func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (domain.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tools, err := s.load(ctx)
	if err != nil {
		return domain.Tool{}, err
	}
	idx := domain.IndexOf(tools, id)
	if idx == -1 {
		return domain.Tool{}, ErrNotFound
	}

	updated := patch.Apply(tools[idx])
	tools[idx] = updated
	if err := s.save(ctx, tools); err != nil {
		return domain.Tool{}, err
	}

	s.logger.Debug("tool updated", logger.String("id", id))
	return updated.Clone(), nil
}

// Delete removes the record with the given id permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tools, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := domain.IndexOf(tools, id)
	if idx == -1 {
		return ErrNotFound
	}

	tools = append(tools[:idx], tools[idx+1:]...)
	if err := s.save(ctx, tools); err != nil {
		return err
	}

	s.logger.Debug("tool deleted", logger.String("id", id))
	return nil
}

func (s *Service) load(ctx context.Context) ([]domain.Tool, error) {
	tools, err := s.backend.Load(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read", Backend: s.backend.Name(), Err: err}
	}
	for i := range tools {
		tools[i] = tools[i].Normalize()
	}
	s.observe(len(tools))
	return tools, nil
}

func (s *Service) save(ctx context.Context, tools []domain.Tool) error {
	if err := s.backend.Save(ctx, tools); err != nil {
		return &StorageError{Op: "write", Backend: s.backend.Name(), Err: err}
	}
	s.observe(len(tools))
	return nil
}

func (s *Service) observe(n int) {
	if s.observer != nil {
		s.observer.ObserveRecords(n)
	}
}
