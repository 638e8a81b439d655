package partner

import (
	"strings"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier is a goods or services vendor. Suppliers are soft-deleted: the
// record keeps its purchase history and is only excluded from default reads.
type Supplier struct {
	shared.BaseEntity
	shared.SoftDelete
	Name          string          `gorm:"type:varchar(200);not null" json:"name" binding:"required,min=1,max=200"`
	Code          string          `gorm:"type:varchar(50);not null;index" json:"code" binding:"required,min=1,max=50"`
	TaxID         string          `gorm:"type:varchar(50)" json:"tax_id"`
	BranchCode    string          `gorm:"type:varchar(20)" json:"branch_code"`
	ContactPerson string          `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string          `gorm:"type:varchar(50);index" json:"phone"`
	Email         string          `gorm:"type:varchar(200)" json:"email" binding:"omitempty,email"`
	Address       string          `gorm:"type:text" json:"address"`
	Province      string          `gorm:"type:varchar(100)" json:"province"`
	PostalCode    string          `gorm:"type:varchar(20)" json:"postal_code"`
	CreditDays    int             `gorm:"not null;default:0" json:"credit_days"`
	CreditLimit   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"credit_limit"`
	BankName      string          `gorm:"type:varchar(200)" json:"bank_name"`
	BankAccount   string          `gorm:"type:varchar(100)" json:"bank_account"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Status        SupplierStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// Validate checks the supplier's domain invariants before persisting
func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return shared.NewValidationError("Supplier name is required.")
	}
	if strings.TrimSpace(s.Code) == "" {
		return shared.NewValidationError("Supplier code is required.")
	}
	if len(s.Code) > 50 {
		return shared.NewValidationError("Supplier code cannot exceed 50 characters")
	}
	if s.CreditDays < 0 {
		return shared.NewValidationError("Credit days cannot be negative")
	}
	if s.CreditLimit.IsNegative() {
		return shared.NewValidationError("Credit limit cannot be negative")
	}
	if s.Status == "" {
		s.Status = SupplierStatusActive
	}
	if s.Status != SupplierStatusActive && s.Status != SupplierStatusInactive {
		return shared.NewValidationError("Invalid supplier status")
	}
	s.Code = strings.ToUpper(s.Code)
	return nil
}

// SupplierDescriptor declares how suppliers are exposed as a resource
var SupplierDescriptor = resource.Descriptor{
	Name:         "supplier",
	DisplayName:  "Supplier",
	Path:         "supplier",
	SoftDelete:   true,
	DefaultOrder: "created_at DESC",
	Updatable: []string{
		"name", "code", "tax_id", "branch_code", "contact_person",
		"phone", "email", "address", "province", "postal_code",
		"credit_days", "credit_limit", "bank_name", "bank_account",
		"notes", "status",
	},
	Searchable: []string{"name", "code", "phone", "email"},
	Sortable:   []string{"created_at", "updated_at", "name", "code"},
}
