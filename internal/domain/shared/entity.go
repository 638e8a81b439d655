package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all persisted records
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// EnsureIdentity assigns a fresh ID and timestamps when the entity has none.
// Identifiers are assigned app-side so the stored record can be returned and
// broadcast without a round trip.
func (e *BaseEntity) EnsureIdentity() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}

// Touch updates the modification timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SoftDeletable is implemented by entities carrying a soft-delete marker.
// Once the marker is set, default reads must exclude the record; the row
// itself is never destroyed by a soft delete.
type SoftDeletable interface {
	DeletedAtTime() *time.Time
	MarkDeleted(now time.Time)
}

// SoftDelete provides the deleted_at marker for soft-deletable entities
type SoftDelete struct {
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

// DeletedAtTime returns the soft-delete timestamp, nil while the record is live
func (s *SoftDelete) DeletedAtTime() *time.Time {
	return s.DeletedAt
}

// MarkDeleted sets the soft-delete marker
func (s *SoftDelete) MarkDeleted(now time.Time) {
	s.DeletedAt = &now
}

// IsDeleted reports whether the soft-delete marker is set
func (s *SoftDelete) IsDeleted() bool {
	return s.DeletedAt != nil
}

// ApplySoftDelete marks an entity deleted at the given instant and returns it.
// Kept as a function so the transition is explicit at call sites and the
// persisted write can be inspected before it happens.
func ApplySoftDelete[T SoftDeletable](record T, now time.Time) T {
	record.MarkDeleted(now)
	return record
}
