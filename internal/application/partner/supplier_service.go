// Package partner wires partner entities (suppliers, customers) onto the
// generic resource service, adding the checks that need store access.
package partner

import (
	"context"
	"strings"

	appresource "github.com/backoffice/backend/internal/application/resource"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewSupplierService builds the supplier resource service. Supplier codes are
// unique among live records; a soft-deleted supplier frees its code.
func NewSupplierService(
	repo resource.Repository[partner.Supplier],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[partner.Supplier] {
	hooks := appresource.Hooks[partner.Supplier]{
		BeforeCreate: func(ctx context.Context, s *partner.Supplier) error {
			taken, err := repo.Exists(ctx, "code = ?", strings.ToUpper(s.Code))
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS", "Supplier code already in use.")
			}
			return nil
		},
		BeforeUpdate: func(ctx context.Context, id uuid.UUID, fields map[string]any) error {
			code, ok := fields["code"].(string)
			if !ok {
				return nil
			}
			code = strings.ToUpper(code)
			fields["code"] = code
			taken, err := repo.Exists(ctx, "code = ? AND id <> ?", code, id)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS", "Supplier code already in use.")
			}
			return nil
		},
	}
	return appresource.NewService(repo, partner.SupplierDescriptor, notifier, logger, hooks)
}

// NewCustomerService builds the customer resource service
func NewCustomerService(
	repo resource.Repository[partner.Customer],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[partner.Customer] {
	return appresource.NewService(repo, partner.CustomerDescriptor, notifier, logger, appresource.Hooks[partner.Customer]{})
}
