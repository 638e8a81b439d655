package contract

import (
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustmentType classifies a contract adjustment
type AdjustmentType string

const (
	AdjustmentTypeReschedule   AdjustmentType = "reschedule"
	AdjustmentTypeRateChange   AdjustmentType = "rate_change"
	AdjustmentTypeWriteOff     AdjustmentType = "write_off"
	AdjustmentTypeEarlyPayoff  AdjustmentType = "early_payoff"
	AdjustmentTypeLateFeeWaive AdjustmentType = "late_fee_waive"
)

// IsValid reports whether the adjustment type is one of the known kinds
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeReschedule, AdjustmentTypeRateChange, AdjustmentTypeWriteOff,
		AdjustmentTypeEarlyPayoff, AdjustmentTypeLateFeeWaive:
		return true
	}
	return false
}

// ContractAdjustment amends a live contract: a reschedule, rate change,
// write-off or payoff. Requires the contract reference and the adjustment
// type; the amount is optional for non-monetary adjustments.
type ContractAdjustment struct {
	shared.BaseEntity
	ContractID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"contract_id" binding:"required"`
	Contract       *InstallmentContract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	AdjustmentType AdjustmentType       `gorm:"type:varchar(30);not null" json:"adjustment_type" binding:"required"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`
	Reason         string               `gorm:"type:text" json:"reason"`
}

// TableName returns the table name for GORM
func (ContractAdjustment) TableName() string {
	return "contract_adjustments"
}

// Validate checks the adjustment's domain invariants before persisting
func (a *ContractAdjustment) Validate() error {
	if a.ContractID == uuid.Nil {
		return shared.NewValidationError("Adjustment contract_id is required.")
	}
	if a.AdjustmentType == "" {
		return shared.NewValidationError("Adjustment adjustment_type is required.")
	}
	if !a.AdjustmentType.IsValid() {
		return shared.NewValidationError("Unknown adjustment type %q", a.AdjustmentType)
	}
	return nil
}

// AdjustmentDescriptor declares how contract adjustments are exposed
var AdjustmentDescriptor = resource.Descriptor{
	Name:         "contractAdjustment",
	DisplayName:  "Contract adjustment",
	Path:         "contract-adjustment",
	SoftDelete:   false,
	DefaultOrder: "created_at DESC",
	Preloads:     []string{"Contract"},
	Updatable:    []string{"amount", "reason"},
	Searchable:   []string{"reason"},
	Sortable:     []string{"created_at", "amount"},
}
