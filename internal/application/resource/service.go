// Package resource implements the generic resource service: uniform
// list/get/create/update/delete over one entity type, with a change event
// broadcast after every successful mutation.
package resource

import (
	"context"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// identity is satisfied by every entity embedding shared.BaseEntity
type identity interface {
	EnsureIdentity()
	GetID() uuid.UUID
}

// validator is implemented by entities with domain invariants
type validator interface {
	Validate() error
}

// Hooks customize the generic flow for one entity type. All hooks are
// optional; the zero value gives plain CRUD.
type Hooks[T any] struct {
	// BeforeCreate runs after validation and before the insert. Uniqueness
	// checks and derived-field computation go here.
	BeforeCreate func(ctx context.Context, record *T) error
	// BeforeUpdate runs before a merge update is written. It receives the
	// target record's id and the whitelisted fields and may normalize the map
	// in place. Uniqueness rechecks excluding the record itself go here.
	BeforeUpdate func(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

// Service exposes one entity type through the uniform operation set.
// The notifier is injected at construction; there is no global registry.
type Service[T any] struct {
	repo     resource.Repository[T]
	desc     resource.Descriptor
	notifier shared.ChangeNotifier
	logger   *zap.Logger
	hooks    Hooks[T]
}

// NewService creates a resource service for one entity type
func NewService[T any](
	repo resource.Repository[T],
	desc resource.Descriptor,
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
	hooks Hooks[T],
) *Service[T] {
	if notifier == nil {
		notifier = shared.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[T]{
		repo:     repo,
		desc:     desc,
		notifier: notifier,
		logger:   logger,
		hooks:    hooks,
	}
}

// Descriptor returns the descriptor this service was built with
func (s *Service[T]) Descriptor() resource.Descriptor {
	return s.desc
}

// List returns one page of records plus the unpaged total. Read-only.
func (s *Service[T]) List(ctx context.Context, filter shared.Filter) ([]T, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

// Get returns one live record or NotFound
func (s *Service[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates, persists and announces a new record. The event goes out
// only after the insert succeeded; a failed create publishes nothing.
func (s *Service[T]) Create(ctx context.Context, record *T) (*T, error) {
	ent, ok := any(record).(identity)
	if !ok {
		return nil, shared.NewDomainError("INTERNAL", "record carries no identity")
	}
	ent.EnsureIdentity()

	if v, ok := any(record).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if s.hooks.BeforeCreate != nil {
		if err := s.hooks.BeforeCreate(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.publish(shared.VerbCreated, ent.GetID(), record)
	return record, nil
}

// Update merges the given fields into an existing record. Fields outside the
// descriptor's whitelist are rejected before anything is written, and the
// merged record is re-validated before the write commits, so a patch cannot
// leave a record in a state Create would have refused.
func (s *Service[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	for col := range fields {
		if !s.desc.CanUpdate(col) {
			return nil, shared.NewValidationError("Field %q cannot be updated", col)
		}
	}
	if s.hooks.BeforeUpdate != nil {
		if err := s.hooks.BeforeUpdate(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	record, err := s.repo.UpdateFields(ctx, id, fields, func(merged *T) error {
		if v, ok := any(merged).(validator); ok {
			return v.Validate()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(shared.VerbUpdated, id, record)
	return record, nil
}

// UpdateWith loads a record, applies a typed mutation and re-persists it.
// Custom services use this for updates that must rederive computed fields.
func (s *Service[T]) UpdateWith(ctx context.Context, id uuid.UUID, mutate func(record *T) error) (*T, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(record); err != nil {
		return nil, err
	}
	if v, ok := any(record).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.publish(shared.VerbUpdated, id, record)
	return record, nil
}

// Delete removes a record per the entity's delete policy and returns what was
// removed (the marked record for soft deletes). Deleting an already-deleted
// or absent record returns NotFound.
func (s *Service[T]) Delete(ctx context.Context, id uuid.UUID) (*T, error) {
	record, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(shared.VerbDeleted, id, record)
	return record, nil
}

// publish broadcasts a change event; it never affects the caller's outcome
func (s *Service[T]) publish(verb shared.ChangeVerb, id uuid.UUID, data any) {
	event := shared.NewChangeEvent(s.desc.Name, verb, id, data)
	s.notifier.Publish(event)
	s.logger.Debug("change event published",
		zap.String("event", event.Name),
		zap.String("id", id.String()),
	)
}
