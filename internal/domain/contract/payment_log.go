package contract

import (
	"time"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how an installment was settled
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
)

// PaymentLog records one installment payment against a contract.
// Logs are append-only evidence; corrections are made by adjustments,
// not by editing the log.
type PaymentLog struct {
	shared.BaseEntity
	ContractID uuid.UUID            `gorm:"type:uuid;not null;index" json:"contract_id" binding:"required"`
	Contract   *InstallmentContract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	Amount     decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"amount" binding:"required"`
	PaidAt     time.Time            `gorm:"not null" json:"paid_at"`
	Method     PaymentMethod        `gorm:"type:varchar(20);not null;default:'cash'" json:"method"`
	Reference  string               `gorm:"type:varchar(100)" json:"reference"`
	ReceivedBy string               `gorm:"type:varchar(100)" json:"received_by"`
}

// TableName returns the table name for GORM
func (PaymentLog) TableName() string {
	return "payment_logs"
}

// Validate checks the payment log's domain invariants before persisting
func (p *PaymentLog) Validate() error {
	if p.ContractID == uuid.Nil {
		return shared.NewValidationError("Payment contract_id is required.")
	}
	if !p.Amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	if p.Method == "" {
		p.Method = PaymentMethodCash
	}
	switch p.Method {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCard:
	default:
		return shared.NewValidationError("Unknown payment method %q", p.Method)
	}
	return nil
}

// PaymentLogDescriptor declares how payment logs are exposed as a resource
var PaymentLogDescriptor = resource.Descriptor{
	Name:         "paymentLog",
	DisplayName:  "Payment log",
	Path:         "payment-log",
	SoftDelete:   false,
	DefaultOrder: "paid_at DESC",
	Preloads:     []string{"Contract"},
	Updatable:    []string{"reference", "received_by"},
	Searchable:   []string{"reference", "received_by"},
	Sortable:     []string{"created_at", "paid_at", "amount"},
}
