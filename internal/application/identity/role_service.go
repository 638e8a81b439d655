// Package identity wires access-control records onto the generic resource
// service.
package identity

import (
	"context"
	"strings"

	appresource "github.com/backoffice/backend/internal/application/resource"
	"github.com/backoffice/backend/internal/domain/identity"
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewRoleService builds the user-role resource service. Role names are
// unique among live roles; the check is case-insensitive so "Admin" and
// "admin" cannot coexist.
func NewRoleService(
	repo resource.Repository[identity.UserRole],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[identity.UserRole] {
	hooks := appresource.Hooks[identity.UserRole]{
		BeforeCreate: func(ctx context.Context, r *identity.UserRole) error {
			taken, err := repo.Exists(ctx, "LOWER(name) = ?", strings.ToLower(r.Name))
			if err != nil {
				return err
			}
			if taken {
				return identity.ErrRoleNameInUse
			}
			return nil
		},
		BeforeUpdate: func(ctx context.Context, id uuid.UUID, fields map[string]any) error {
			name, ok := fields["name"].(string)
			if !ok {
				return nil
			}
			taken, err := repo.Exists(ctx, "LOWER(name) = ? AND id <> ?", strings.ToLower(name), id)
			if err != nil {
				return err
			}
			if taken {
				return identity.ErrRoleNameInUse
			}
			return nil
		},
	}
	return appresource.NewService(repo, identity.UserRoleDescriptor, notifier, logger, hooks)
}
