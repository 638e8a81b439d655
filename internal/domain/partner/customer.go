package partner

import (
	"strings"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
)

// CustomerType distinguishes retail walk-ins from registered businesses
type CustomerType string

const (
	CustomerTypeIndividual   CustomerType = "individual"
	CustomerTypeOrganization CustomerType = "organization"
)

// Customer is a buyer referenced by installment contracts and payment logs.
// Soft-deleted so historical contracts keep a resolvable reference.
type Customer struct {
	shared.BaseEntity
	shared.SoftDelete
	Name       string       `gorm:"type:varchar(200);not null" json:"name" binding:"required,min=1,max=200"`
	Type       CustomerType `gorm:"type:varchar(20);not null;default:'individual'" json:"type"`
	IDCard     string       `gorm:"type:varchar(20);index" json:"id_card"`
	Phone      string       `gorm:"type:varchar(50);index" json:"phone"`
	Email      string       `gorm:"type:varchar(200)" json:"email" binding:"omitempty,email"`
	Address    string       `gorm:"type:text" json:"address"`
	Province   string       `gorm:"type:varchar(100)" json:"province"`
	PostalCode string       `gorm:"type:varchar(20)" json:"postal_code"`
	Occupation string       `gorm:"type:varchar(100)" json:"occupation"`
	Notes      string       `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// Validate checks the customer's domain invariants before persisting
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewValidationError("Customer name is required.")
	}
	if c.Type == "" {
		c.Type = CustomerTypeIndividual
	}
	if c.Type != CustomerTypeIndividual && c.Type != CustomerTypeOrganization {
		return shared.NewValidationError("Invalid customer type")
	}
	return nil
}

// CustomerDescriptor declares how customers are exposed as a resource
var CustomerDescriptor = resource.Descriptor{
	Name:         "customer",
	DisplayName:  "Customer",
	Path:         "customer",
	SoftDelete:   true,
	DefaultOrder: "created_at DESC",
	Updatable: []string{
		"name", "type", "id_card", "phone", "email",
		"address", "province", "postal_code", "occupation", "notes",
	},
	Searchable: []string{"name", "phone", "id_card"},
	Sortable:   []string{"created_at", "updated_at", "name"},
}
