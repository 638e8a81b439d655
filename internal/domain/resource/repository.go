package resource

import (
	"context"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository is the persistence contract the generic resource service runs
// against. FindByID and FindAll respect the descriptor's soft-delete policy;
// FindAnyByID sees marked records too. UpdateFields runs the optional check
// against the merged record inside the same transaction as the write, so a
// check failure leaves the stored record untouched.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAnyByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]T, int64, error)
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any, check func(record *T) error) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) (*T, error)
	Exists(ctx context.Context, cond string, args ...any) (bool, error)
}
