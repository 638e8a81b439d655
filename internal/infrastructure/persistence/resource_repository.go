package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceRepository is a GORM-backed implementation of resource.Repository.
// One instance serves one entity type; everything entity-specific comes from
// the descriptor. Each call is a single store round trip (plus preloads) and
// carries the request context, so cancellation propagates to the driver.
type ResourceRepository[T any] struct {
	db   *gorm.DB
	desc resource.Descriptor
}

// NewResourceRepository creates a repository for one entity type
func NewResourceRepository[T any](db *gorm.DB, desc resource.Descriptor) *ResourceRepository[T] {
	return &ResourceRepository[T]{db: db, desc: desc}
}

// Descriptor returns the descriptor this repository was built with
func (r *ResourceRepository[T]) Descriptor() resource.Descriptor {
	return r.desc
}

// scope returns a query over the entity table honoring the soft-delete policy
func (r *ResourceRepository[T]) scope(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if r.desc.SoftDelete {
		q = q.Where("deleted_at IS NULL")
	}
	return q
}

// withPreloads expands the descriptor's populate rules onto a query
func (r *ResourceRepository[T]) withPreloads(q *gorm.DB) *gorm.DB {
	for _, p := range r.desc.Preloads {
		q = q.Preload(p)
	}
	return q
}

// FindByID returns one live record or NotFound. Soft-deleted records are
// indistinguishable from absent ones.
func (r *ResourceRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.withPreloads(r.scope(ctx)).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFoundError(r.desc.DisplayName)
		}
		return nil, err
	}
	return &record, nil
}

// FindAnyByID returns a record regardless of its soft-delete marker
func (r *ResourceRepository[T]) FindAnyByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.withPreloads(r.db.WithContext(ctx).Model(new(T))).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFoundError(r.desc.DisplayName)
		}
		return nil, err
	}
	return &record, nil
}

// FindAll returns one page of live records plus the unpaged total.
// An empty result is a valid result, never an error.
func (r *ResourceRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.applyFilters(r.scope(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.withPreloads(r.applyFilters(r.scope(ctx), filter)).
		Order(r.orderClause(filter)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize)

	records := make([]T, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Create persists a new record together with its owned associations
func (r *ResourceRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save re-persists a loaded record, replacing owned associations
func (r *ResourceRepository[T]) Save(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(record).Error
}

// UpdateFields merges the given columns into an existing record and returns
// the stored result. Absent fields stay untouched; an empty map is a no-op
// read. NotFound when the id does not resolve to a live record. The write and
// the check run in one transaction; a check error rolls the merge back.
func (r *ResourceRepository[T]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any, check func(record *T) error) (*T, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	assignments := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		assignments[k] = v
	}
	assignments["updated_at"] = time.Now()

	var record T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		write := tx.Model(new(T))
		if r.desc.SoftDelete {
			write = write.Where("deleted_at IS NULL")
		}
		if err := write.Where("id = ?", id).Updates(assignments).Error; err != nil {
			return err
		}

		reload := tx.Model(new(T))
		if r.desc.SoftDelete {
			reload = reload.Where("deleted_at IS NULL")
		}
		for _, p := range r.desc.Preloads {
			reload = reload.Preload(p)
		}
		if err := reload.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if check != nil {
			return check(&record)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NotFoundError(r.desc.DisplayName)
		}
		return nil, err
	}
	return &record, nil
}

// Delete removes a live record according to the delete policy and returns it.
// Soft delete marks deleted_at and keeps the row; a second Delete on the same
// id sees no live record and returns NotFound.
func (r *ResourceRepository[T]) Delete(ctx context.Context, id uuid.UUID) (*T, error) {
	record, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.desc.SoftDelete {
		marked, ok := any(record).(shared.SoftDeletable)
		if !ok {
			return nil, fmt.Errorf("%s is configured for soft delete but carries no marker", r.desc.Name)
		}
		now := time.Now()
		shared.ApplySoftDelete(marked, now)
		err = r.scope(ctx).Where("id = ?", id).Update("deleted_at", now).Error
	} else {
		err = r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Exists reports whether any live record matches the condition
func (r *ResourceRepository[T]) Exists(ctx context.Context, cond string, args ...any) (bool, error) {
	var count int64
	if err := r.scope(ctx).Where(cond, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilters adds search and equality filters to a query
func (r *ResourceRepository[T]) applyFilters(q *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" && len(r.desc.Searchable) > 0 {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conds := make([]string, 0, len(r.desc.Searchable))
		args := make([]any, 0, len(r.desc.Searchable))
		for _, col := range r.desc.Searchable {
			conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, pattern)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	// Equality filters are restricted to the descriptor's known columns so a
	// query parameter can never name an arbitrary column.
	for col, val := range filter.Filters {
		if r.desc.CanUpdate(col) || r.desc.CanSort(col) {
			q = q.Where(fmt.Sprintf("%s = ?", col), val)
		}
	}
	return q
}

// orderClause resolves the sort column against the descriptor whitelist
func (r *ResourceRepository[T]) orderClause(filter shared.Filter) string {
	if filter.OrderBy != "" && r.desc.CanSort(filter.OrderBy) {
		dir := "DESC"
		if filter.OrderDir == "asc" {
			dir = "ASC"
		}
		return filter.OrderBy + " " + dir
	}
	if r.desc.DefaultOrder != "" {
		return r.desc.DefaultOrder
	}
	return "created_at DESC"
}

// Ensure ResourceRepository implements resource.Repository
var _ resource.Repository[struct{}] = (*ResourceRepository[struct{}])(nil)
