package finance

import (
	"context"

	appresource "github.com/backoffice/backend/internal/application/resource"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/backoffice/backend/internal/domain/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger accounts used when booking other income
const (
	accountCash        = "1010"
	accountOtherIncome = "4900"
)

// IncomeService handles other-income records. Creating one also books a
// journal entry; both rows are written in a single store transaction so a
// failed journal write rolls the income back too.
type IncomeService struct {
	*appresource.Service[finance.OtherIncome]
	db       *gorm.DB
	notifier shared.ChangeNotifier
	logger   *zap.Logger
}

// NewIncomeService builds the income service
func NewIncomeService(
	db *gorm.DB,
	repo resource.Repository[finance.OtherIncome],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *IncomeService {
	if notifier == nil {
		notifier = shared.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IncomeService{
		Service:  appresource.NewService(repo, finance.OtherIncomeDescriptor, notifier, logger, appresource.Hooks[finance.OtherIncome]{}),
		db:       db,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateWithJournal persists an income record and its journal entry
// atomically, then announces both. Events go out only after the transaction
// committed; a rollback publishes nothing.
func (s *IncomeService) CreateWithJournal(ctx context.Context, income *finance.OtherIncome) (*finance.OtherIncome, *finance.JournalEntry, error) {
	income.EnsureIdentity()
	if err := income.Validate(); err != nil {
		return nil, nil, err
	}

	entry := &finance.JournalEntry{
		EntryDate:     income.IncomeDate,
		Description:   income.Title,
		DebitAccount:  accountCash,
		CreditAccount: accountOtherIncome,
		Amount:        income.Amount,
		SourceType:    "other_income",
		SourceID:      &income.ID,
	}
	entry.EnsureIdentity()
	if err := entry.Validate(); err != nil {
		return nil, nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(income).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifier.Publish(shared.NewChangeEvent(finance.OtherIncomeDescriptor.Name, shared.VerbCreated, income.ID, income))
	s.notifier.Publish(shared.NewChangeEvent(finance.JournalEntryDescriptor.Name, shared.VerbCreated, entry.ID, entry))
	return income, entry, nil
}

// NewJournalEntryService builds the read-mostly journal entry service
func NewJournalEntryService(
	repo resource.Repository[finance.JournalEntry],
	notifier shared.ChangeNotifier,
	logger *zap.Logger,
) *appresource.Service[finance.JournalEntry] {
	return appresource.NewService(repo, finance.JournalEntryDescriptor, notifier, logger, appresource.Hooks[finance.JournalEntry]{})
}
