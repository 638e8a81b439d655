// Package contract wires installment contracts, adjustments and payment logs
// onto the generic resource service.
package contract

import (
	"context"

	appresource "github.com/backoffice/backend/internal/application/resource"
	"github.com/backoffice/backend/internal/domain/contract"
	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NewContractService builds the installment-contract service. Creation
// verifies the customer reference resolves to a live customer and derives the
// payment schedule before the insert.
func NewContractService(
	repo resource.Repository[contract.InstallmentContract],
	customers resource.Repository[partner.Customer],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[contract.InstallmentContract] {
	hooks := appresource.Hooks[contract.InstallmentContract]{
		BeforeCreate: func(ctx context.Context, c *contract.InstallmentContract) error {
			if _, err := customers.FindByID(ctx, c.CustomerID); err != nil {
				return shared.NewValidationError("Contract customer does not exist")
			}
			taken, err := repo.Exists(ctx, "contract_no = ?", c.ContractNo)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS", "Contract number already in use.")
			}
			c.RecalculateSchedule()
			return nil
		},
	}
	return appresource.NewService(repo, contract.ContractDescriptor, notifier, logger, hooks)
}

// NewAdjustmentService builds the contract-adjustment service. The contract
// reference must resolve; the adjustment itself is free-form beyond its type.
func NewAdjustmentService(
	repo resource.Repository[contract.ContractAdjustment],
	contracts resource.Repository[contract.InstallmentContract],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[contract.ContractAdjustment] {
	hooks := appresource.Hooks[contract.ContractAdjustment]{
		BeforeCreate: func(ctx context.Context, a *contract.ContractAdjustment) error {
			if _, err := contracts.FindByID(ctx, a.ContractID); err != nil {
				return shared.NewValidationError("Adjustment contract does not exist")
			}
			return nil
		},
	}
	return appresource.NewService(repo, contract.AdjustmentDescriptor, notifier, logger, hooks)
}

// NewPaymentLogService builds the payment-log service
func NewPaymentLogService(
	repo resource.Repository[contract.PaymentLog],
	contracts resource.Repository[contract.InstallmentContract],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[contract.PaymentLog] {
	hooks := appresource.Hooks[contract.PaymentLog]{
		BeforeCreate: func(ctx context.Context, p *contract.PaymentLog) error {
			if _, err := contracts.FindByID(ctx, p.ContractID); err != nil {
				return shared.NewValidationError("Payment contract does not exist")
			}
			return nil
		},
	}
	return appresource.NewService(repo, contract.PaymentLogDescriptor, notifier, logger, hooks)
}
