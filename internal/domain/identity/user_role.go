// Package identity holds access-control records. Authentication policy itself
// is out of scope; roles exist because other modules reference them.
package identity

import (
	"strings"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
)

// UserRole names a permission bundle assigned to staff accounts. Role names
// are unique among live records; soft-deleted roles free their name for reuse.
type UserRole struct {
	shared.BaseEntity
	shared.SoftDelete
	Name        string `gorm:"type:varchar(100);not null;index" json:"name" binding:"required,min=1,max=100"`
	Description string `gorm:"type:text" json:"description"`
	Permissions string `gorm:"type:jsonb;default:'[]'" json:"permissions"`
}

// TableName returns the table name for GORM
func (UserRole) TableName() string {
	return "user_roles"
}

// Validate checks the role's domain invariants before persisting
func (r *UserRole) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return shared.NewValidationError("Role name is required.")
	}
	if len(r.Name) > 100 {
		return shared.NewValidationError("Role name cannot exceed 100 characters")
	}
	if r.Permissions == "" {
		r.Permissions = "[]"
	}
	return nil
}

// ErrRoleNameInUse is returned when creating a role whose name is taken
var ErrRoleNameInUse = shared.NewDomainError("ALREADY_EXISTS", "Role name already in use.")

// UserRoleDescriptor declares how user roles are exposed as a resource
var UserRoleDescriptor = resource.Descriptor{
	Name:         "userRole",
	DisplayName:  "User role",
	Path:         "user-role",
	SoftDelete:   true,
	DefaultOrder: "created_at DESC",
	Updatable:    []string{"name", "description", "permissions"},
	Searchable:   []string{"name"},
	Sortable:     []string{"created_at", "name"},
}
