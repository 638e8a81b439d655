package resource

import (
	"context"
	"fmt"
	"testing"

	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captureNotifier struct {
	events []shared.ChangeEvent
}

func (c *captureNotifier) Publish(e shared.ChangeEvent) {
	c.events = append(c.events, e)
}

func (c *captureNotifier) named(name string) []shared.ChangeEvent {
	var out []shared.ChangeEvent
	for _, e := range c.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func newSupplierService(t *testing.T) (*Service[partner.Supplier], *persistence.ResourceRepository[partner.Supplier], *captureNotifier) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&partner.Supplier{}))

	repo := persistence.NewResourceRepository[partner.Supplier](db, partner.SupplierDescriptor)
	notifier := &captureNotifier{}
	svc := NewService(repo, partner.SupplierDescriptor, notifier, zap.NewNop(), Hooks[partner.Supplier]{})
	return svc, repo, notifier
}

func newSupplier(name, code string) *partner.Supplier {
	return &partner.Supplier{Name: name, Code: code}
}

func TestServiceCreate(t *testing.T) {
	t.Run("persists and returns the record with identity assigned", func(t *testing.T) {
		svc, _, notifier := newSupplierService(t)

		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Nil(t, created.DeletedAt)

		got, err := svc.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, "S01", got.Code)

		events := notifier.named("supplierCreated")
		require.Len(t, events, 1)
		assert.Equal(t, created.ID, events[0].Payload.ID)
	})

	t.Run("failed validation persists nothing and publishes nothing", func(t *testing.T) {
		svc, _, notifier := newSupplierService(t)

		_, err := svc.Create(context.Background(), newSupplier("", "S01"))
		require.Error(t, err)
		assert.Empty(t, notifier.events)

		_, total, err := svc.List(context.Background(), shared.Filter{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("failed create hook publishes nothing", func(t *testing.T) {
		svc, repo, notifier := newSupplierService(t)
		svc.hooks.BeforeCreate = func(ctx context.Context, s *partner.Supplier) error {
			taken, err := repo.Exists(ctx, "code = ?", s.Code)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS", "Supplier code already in use.")
			}
			return nil
		}

		_, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)
		_, err = svc.Create(context.Background(), newSupplier("Other", "S01"))
		require.Error(t, err)

		assert.Len(t, notifier.named("supplierCreated"), 1)
	})
}

func TestServiceGet(t *testing.T) {
	svc, _, _ := newSupplierService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Supplier not found or already deleted.", domainErr.Message)
}

func TestServiceUpdate(t *testing.T) {
	t.Run("merges only the provided fields", func(t *testing.T) {
		svc, _, notifier := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), created.ID, map[string]any{"phone": "555-0101"})
		require.NoError(t, err)
		assert.Equal(t, "555-0101", updated.Phone)
		assert.Equal(t, "Acme", updated.Name)
		assert.Equal(t, "S01", updated.Code)

		events := notifier.named("supplierUpdated")
		require.Len(t, events, 1)
		assert.Equal(t, created.ID, events[0].Payload.ID)
	})

	t.Run("empty body is a no-op read", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), created.ID, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "Acme", updated.Name)
		assert.Equal(t, "S01", updated.Code)
	})

	t.Run("rejects fields outside the whitelist", func(t *testing.T) {
		svc, _, notifier := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), created.ID, map[string]any{"deleted_at": "2020-01-01"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION", domainErr.Code)
		assert.Empty(t, notifier.named("supplierUpdated"))
	})

	t.Run("a patch that breaks an invariant is rolled back", func(t *testing.T) {
		svc, repo, notifier := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), created.ID, map[string]any{"status": "dormant"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION", domainErr.Code)

		got, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, partner.SupplierStatusActive, got.Status)
		assert.Empty(t, notifier.named("supplierUpdated"))
	})

	t.Run("missing id is NotFound", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		_, err := svc.Update(context.Background(), uuid.New(), map[string]any{"name": "x"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Run("soft delete marks the record and keeps the row", func(t *testing.T) {
		svc, repo, notifier := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)

		removed, err := svc.Delete(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, removed.DeletedAt)

		events := notifier.named("supplierDeleted")
		require.Len(t, events, 1)
		assert.Equal(t, created.ID, events[0].Payload.ID)

		// Gone from default reads
		_, err = svc.Get(context.Background(), created.ID)
		require.Error(t, err)
		_, total, err := svc.List(context.Background(), shared.Filter{})
		require.NoError(t, err)
		assert.Zero(t, total)

		// Row still present under the marker
		row, err := repo.FindAnyByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.NotNil(t, row.DeletedAt)
	})

	t.Run("deleting twice is NotFound", func(t *testing.T) {
		svc, _, notifier := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)

		_, err = svc.Delete(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = svc.Delete(context.Background(), created.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Len(t, notifier.named("supplierDeleted"), 1)
	})

	t.Run("updating a soft-deleted record is NotFound", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		created, err := svc.Create(context.Background(), newSupplier("Acme", "S01"))
		require.NoError(t, err)
		_, err = svc.Delete(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), created.ID, map[string]any{"name": "New"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestServiceList(t *testing.T) {
	seed := func(t *testing.T, svc *Service[partner.Supplier], n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			_, err := svc.Create(context.Background(), newSupplier(
				fmt.Sprintf("Supplier %03d", i),
				fmt.Sprintf("S%03d", i),
			))
			require.NoError(t, err)
		}
	}

	t.Run("returns records with the unpaged total", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		seed(t, svc, 5)

		records, total, err := svc.List(context.Background(), shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, records, 5)
		assert.EqualValues(t, 5, total)
	})

	t.Run("pages with explicit size", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		seed(t, svc, 5)

		records, total, err := svc.List(context.Background(), shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.EqualValues(t, 5, total)
	})

	t.Run("search matches case-insensitively across searchable columns", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		_, err := svc.Create(context.Background(), newSupplier("Acme Trading", "S01"))
		require.NoError(t, err)
		_, err = svc.Create(context.Background(), newSupplier("Globex", "S02"))
		require.NoError(t, err)

		records, total, err := svc.List(context.Background(), shared.Filter{Search: "acme"})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, "Acme Trading", records[0].Name)
	})

	t.Run("equality filters apply only to known columns", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		seed(t, svc, 2)

		records, total, err := svc.List(context.Background(), shared.Filter{
			Filters: map[string]any{
				"status":     "active",
				"not_a_real": "ignored",
			},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, records, 2)
	})

	t.Run("sort whitelist rejects unknown columns", func(t *testing.T) {
		svc, _, _ := newSupplierService(t)
		seed(t, svc, 3)

		records, _, err := svc.List(context.Background(), shared.Filter{
			OrderBy:  "name",
			OrderDir: "asc",
		})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Supplier 000", records[0].Name)

		_, _, err = svc.List(context.Background(), shared.Filter{OrderBy: "credit_limit; DROP TABLE suppliers"})
		require.NoError(t, err)
	})
}
