// Package finance wires the finance entities onto the resource machinery and
// carries the two flows that need more than plain CRUD: derived expense
// totals and the income-plus-journal write.
package finance

import (
	"context"
	"time"

	appresource "github.com/backoffice/backend/internal/application/resource"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpdateExpenseRequest is a typed partial update for an expense. Pointer
// fields distinguish "not sent" from zero values; anything touching the
// derived totals forces a recompute in the same write.
type UpdateExpenseRequest struct {
	Title       *string                `json:"title" binding:"omitempty,min=1,max=200"`
	Category    *string                `json:"category" binding:"omitempty,max=50"`
	SupplierID  *uuid.UUID             `json:"supplier_id"`
	ExpenseDate *time.Time             `json:"expense_date"`
	Items       *[]finance.ExpenseItem `json:"items"`
	VatRate     *decimal.Decimal       `json:"vat_rate"`
	Deposit     *decimal.Decimal       `json:"deposit"`
	Notes       *string                `json:"notes"`
}

// ExpenseService handles expenses. Creation and every update run through
// RecalculateTotals, so stored totals can never drift from the line items.
type ExpenseService struct {
	*appresource.Service[finance.Expense]
}

// NewExpenseService builds the expense service on top of the generic one
func NewExpenseService(
	repo resource.Repository[finance.Expense],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *ExpenseService {
	hooks := appresource.Hooks[finance.Expense]{
		BeforeCreate: func(_ context.Context, e *finance.Expense) error {
			e.RecalculateTotals()
			return nil
		},
	}
	return &ExpenseService{
		Service: appresource.NewService(repo, finance.ExpenseDescriptor, notifier, logger, hooks),
	}
}

// UpdateExpense applies a typed partial update and rederives the totals
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*finance.Expense, error) {
	return s.UpdateWith(ctx, id, func(e *finance.Expense) error {
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Category != nil {
			e.Category = *req.Category
		}
		if req.SupplierID != nil {
			e.SupplierID = req.SupplierID
		}
		if req.ExpenseDate != nil {
			e.ExpenseDate = *req.ExpenseDate
		}
		if req.Items != nil {
			e.Items = *req.Items
		}
		if req.VatRate != nil {
			e.VatRate = *req.VatRate
		}
		if req.Deposit != nil {
			e.Deposit = *req.Deposit
		}
		if req.Notes != nil {
			e.Notes = *req.Notes
		}
		e.RecalculateTotals()
		e.Touch()
		return nil
	})
}
