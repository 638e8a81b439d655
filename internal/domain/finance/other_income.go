package finance

import (
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OtherIncome is a non-sales income record (interest, fees, scrap sales).
// Creating one also books a journal entry; both writes happen in a single
// store transaction so the ledger cannot drift from the income list.
type OtherIncome struct {
	shared.BaseEntity
	Title      string          `gorm:"type:varchar(200);not null" json:"title" binding:"required,min=1,max=200"`
	Source     string          `gorm:"type:varchar(100)" json:"source"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount" binding:"required"`
	IncomeDate time.Time       `gorm:"not null" json:"income_date"`
	AccountRef string          `gorm:"type:varchar(50)" json:"account_ref"`
	Notes      string          `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (OtherIncome) TableName() string {
	return "other_incomes"
}

// Validate checks the income's domain invariants before persisting
func (o *OtherIncome) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return shared.NewValidationError("Income title is required.")
	}
	if !o.Amount.IsPositive() {
		return shared.NewValidationError("Income amount must be positive")
	}
	if o.IncomeDate.IsZero() {
		o.IncomeDate = time.Now()
	}
	return nil
}

// OtherIncomeDescriptor declares how other income records are exposed.
// Updates and deletes stay generic; only creation is special-cased because of
// the paired journal write.
var OtherIncomeDescriptor = resource.Descriptor{
	Name:         "otherIncome",
	DisplayName:  "Income record",
	Path:         "other-income",
	SoftDelete:   false,
	DefaultOrder: "income_date DESC",
	Updatable:    []string{"title", "source", "account_ref", "notes"},
	Searchable:   []string{"title", "source"},
	Sortable:     []string{"created_at", "income_date", "amount"},
}
