package finance

import (
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseItem is one line of an expense: quantity, unit price and a per-unit
// discount. LineTotal is derived, never accepted from input. Items are
// embedded in the expense record, mirroring how the documents are filed.
type ExpenseItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Expense is a cost record with embedded line items. Totals are derived from
// the items plus VAT rate and deposit, and must be recomputed on every create
// or update that touches any of those inputs; the store never computes them.
type Expense struct {
	shared.BaseEntity
	Title          string          `gorm:"type:varchar(200);not null" json:"title" binding:"required,min=1,max=200"`
	Category       string          `gorm:"type:varchar(50);not null;default:'OTHER'" json:"category"`
	SupplierID     *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id"`
	ExpenseDate    time.Time       `gorm:"not null" json:"expense_date"`
	Items          []ExpenseItem   `gorm:"type:jsonb;serializer:json" json:"items"`
	VatRate        decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"vat_rate"`
	Deposit        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"deposit"`
	TotalBeforeTax decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_before_tax"`
	TotalNet       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_net"`
	Notes          string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// Validate checks the expense's domain invariants before persisting
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return shared.NewValidationError("Expense title is required.")
	}
	if e.VatRate.IsNegative() {
		return shared.NewValidationError("VAT rate cannot be negative")
	}
	if e.Deposit.IsNegative() {
		return shared.NewValidationError("Deposit cannot be negative")
	}
	for _, it := range e.Items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() || it.Discount.IsNegative() {
			return shared.NewValidationError("Expense items cannot carry negative amounts")
		}
	}
	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = time.Now()
	}
	if e.Category == "" {
		e.Category = "OTHER"
	}
	return nil
}

// RecalculateTotals rederives every line total and the expense totals:
//
//	lineTotal      = quantity*unitPrice - discount*quantity
//	totalBeforeTax = sum(lineTotal)
//	totalNet       = totalBeforeTax * (1 + vatRate/100) - deposit
//
// Intermediate values stay unrounded; only the final net total is rounded to
// 2 decimal places.
func (e *Expense) RecalculateTotals() {
	totalBeforeTax := decimal.Zero
	for i := range e.Items {
		it := &e.Items[i]
		line := it.Quantity.Mul(it.UnitPrice).Sub(it.Discount.Mul(it.Quantity))
		it.LineTotal = line
		totalBeforeTax = totalBeforeTax.Add(line)
	}
	e.TotalBeforeTax = totalBeforeTax

	vatFactor := decimal.NewFromInt(1).Add(e.VatRate.Div(decimal.NewFromInt(100)))
	e.TotalNet = totalBeforeTax.Mul(vatFactor).Sub(e.Deposit).Round(2)
}

// ExpenseDescriptor declares how expenses are exposed as a resource.
// The Updatable whitelist deliberately excludes items, vat_rate and deposit:
// anything that feeds the derived totals goes through the typed expense
// update so the totals are always recomputed in the same write.
var ExpenseDescriptor = resource.Descriptor{
	Name:         "expense",
	DisplayName:  "Expense",
	Path:         "expense",
	SoftDelete:   false,
	DefaultOrder: "expense_date DESC",
	Updatable:    []string{"title", "category", "notes"},
	Searchable:   []string{"title", "category"},
	Sortable:     []string{"created_at", "expense_date", "total_net"},
}
