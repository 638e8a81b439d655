package identity

import (
	"context"
	"testing"

	appresource "github.com/backoffice/backend/internal/application/resource"
	domainidentity "github.com/backoffice/backend/internal/domain/identity"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRoleService(t *testing.T) *appresource.Service[domainidentity.UserRole] {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domainidentity.UserRole{}))

	repo := persistence.NewResourceRepository[domainidentity.UserRole](db, domainidentity.UserRoleDescriptor)
	return NewRoleService(repo, shared.NopNotifier{}, zap.NewNop())
}

func TestRoleNameUniqueness(t *testing.T) {
	t.Run("rejects a duplicate name regardless of case", func(t *testing.T) {
		svc := newRoleService(t)

		_, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "Admin"})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), &domainidentity.UserRole{Name: "admin"})
		require.Error(t, err)
		assert.Equal(t, "Role name already in use.", err.Error())
	})

	t.Run("a soft-deleted role frees its name", func(t *testing.T) {
		svc := newRoleService(t)

		created, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "Cashier"})
		require.NoError(t, err)
		_, err = svc.Delete(context.Background(), created.ID)
		require.NoError(t, err)

		again, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "cashier"})
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, again.ID)
	})

	t.Run("a patch cannot take another role's name", func(t *testing.T) {
		svc := newRoleService(t)

		_, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "Admin"})
		require.NoError(t, err)
		clerk, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "Clerk"})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), clerk.ID, map[string]any{"name": "admin"})
		require.Error(t, err)
		assert.Equal(t, "Role name already in use.", err.Error())

		got, err := svc.Get(context.Background(), clerk.ID)
		require.NoError(t, err)
		assert.Equal(t, "Clerk", got.Name)
	})

	t.Run("a role keeps its own name through a patch", func(t *testing.T) {
		svc := newRoleService(t)

		created, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "Auditor"})
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), created.ID, map[string]any{
			"name":        "Auditor",
			"description": "Read-only access",
		})
		require.NoError(t, err)
		assert.Equal(t, "Auditor", updated.Name)
		assert.Equal(t, "Read-only access", updated.Description)
	})

	t.Run("defaults permissions to an empty list", func(t *testing.T) {
		svc := newRoleService(t)

		created, err := svc.Create(context.Background(), &domainidentity.UserRole{Name: "Viewer"})
		require.NoError(t, err)
		assert.Equal(t, "[]", created.Permissions)
	})
}
