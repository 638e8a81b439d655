// Package contract models installment sale contracts: a financed principal
// repaid over fixed monthly installments, with adjustments and payment logs
// recorded against the contract.
package contract

import (
	"time"

	"github.com/backoffice/backend/internal/domain/partner"
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractStatus is a plain status string; contracts have no richer workflow
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusPaidOff   ContractStatus = "paid_off"
	ContractStatusDefaulted ContractStatus = "defaulted"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// InstallmentContract finances a principal over Months equal installments.
// TotalPayable is derived: downPayment + months * monthlyAmount.
type InstallmentContract struct {
	shared.BaseEntity
	ContractNo    string            `gorm:"type:varchar(50);not null;index" json:"contract_no" binding:"required"`
	CustomerID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id" binding:"required"`
	Customer      *partner.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Principal     decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"principal" binding:"required"`
	DownPayment   decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"down_payment"`
	Months        int               `gorm:"not null" json:"months" binding:"required,min=1"`
	MonthlyAmount decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"monthly_amount"`
	InterestRate  decimal.Decimal   `gorm:"type:decimal(8,4);not null;default:0" json:"interest_rate"`
	TotalPayable  decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0" json:"total_payable"`
	StartDate     time.Time         `gorm:"not null" json:"start_date"`
	Status        ContractStatus    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Notes         string            `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (InstallmentContract) TableName() string {
	return "installment_contracts"
}

// Validate checks the contract's domain invariants before persisting
func (c *InstallmentContract) Validate() error {
	if c.ContractNo == "" {
		return shared.NewValidationError("Contract number is required.")
	}
	if c.CustomerID == uuid.Nil {
		return shared.NewValidationError("Contract customer is required.")
	}
	if !c.Principal.IsPositive() {
		return shared.NewValidationError("Contract principal must be positive")
	}
	if c.Months < 1 {
		return shared.NewValidationError("Contract must run for at least one month")
	}
	if c.DownPayment.IsNegative() || c.InterestRate.IsNegative() {
		return shared.NewValidationError("Contract amounts cannot be negative")
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Now()
	}
	if c.Status == "" {
		c.Status = ContractStatusActive
	}
	return nil
}

// RecalculateSchedule derives the monthly amount and total payable.
// The financed portion accrues flat interest over the whole term:
//
//	financed   = principal - downPayment
//	monthly    = financed * (1 + interestRate/100) / months
//	totalPayable = downPayment + months * monthly
//
// Monthly amounts are rounded to 2 decimals; the total is derived from the
// rounded monthly amount so the schedule always sums to the total.
func (c *InstallmentContract) RecalculateSchedule() {
	financed := c.Principal.Sub(c.DownPayment)
	if financed.IsNegative() {
		financed = decimal.Zero
	}
	factor := decimal.NewFromInt(1).Add(c.InterestRate.Div(decimal.NewFromInt(100)))
	months := decimal.NewFromInt(int64(c.Months))
	c.MonthlyAmount = financed.Mul(factor).Div(months).Round(2)
	c.TotalPayable = c.DownPayment.Add(c.MonthlyAmount.Mul(months))
}

// ContractDescriptor declares how contracts are exposed as a resource.
// The customer reference is populated on reads.
var ContractDescriptor = resource.Descriptor{
	Name:         "contract",
	DisplayName:  "Contract",
	Path:         "contract",
	SoftDelete:   false,
	DefaultOrder: "created_at DESC",
	Preloads:     []string{"Customer"},
	Updatable:    []string{"status", "notes"},
	Searchable:   []string{"contract_no"},
	Sortable:     []string{"created_at", "start_date", "total_payable"},
}
