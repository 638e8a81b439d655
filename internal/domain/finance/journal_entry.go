package finance

import (
	"time"

	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalEntry is a double-entry ledger record. Entries are created alongside
// the business document they book (e.g. an income record) and are read-mostly
// afterwards: the API never mutates amounts on an existing entry.
type JournalEntry struct {
	shared.BaseEntity
	EntryDate     time.Time       `gorm:"not null" json:"entry_date"`
	Description   string          `gorm:"type:varchar(500)" json:"description"`
	DebitAccount  string          `gorm:"type:varchar(50);not null" json:"debit_account" binding:"required"`
	CreditAccount string          `gorm:"type:varchar(50);not null" json:"credit_account" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount" binding:"required"`
	SourceType    string          `gorm:"type:varchar(50);index" json:"source_type"`
	SourceID      *uuid.UUID      `gorm:"type:uuid;index" json:"source_id"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// Validate checks the entry's domain invariants before persisting
func (j *JournalEntry) Validate() error {
	if j.DebitAccount == "" || j.CreditAccount == "" {
		return shared.NewValidationError("Journal entry requires debit and credit accounts.")
	}
	if j.DebitAccount == j.CreditAccount {
		return shared.NewValidationError("Debit and credit accounts must differ")
	}
	if !j.Amount.IsPositive() {
		return shared.NewValidationError("Journal amount must be positive")
	}
	if j.EntryDate.IsZero() {
		j.EntryDate = time.Now()
	}
	return nil
}

// JournalEntryDescriptor declares how journal entries are exposed. Only the
// description is updatable; amounts and accounts never change on an existing
// entry.
var JournalEntryDescriptor = resource.Descriptor{
	Name:         "journalEntry",
	DisplayName:  "Journal entry",
	Path:         "journal-entry",
	SoftDelete:   false,
	DefaultOrder: "entry_date DESC",
	Updatable:    []string{"description"},
	Searchable:   []string{"description", "debit_account", "credit_account"},
	Sortable:     []string{"created_at", "entry_date", "amount"},
}
