package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExpenseRecalculateTotals(t *testing.T) {
	t.Run("computes totals from items, vat and deposit", func(t *testing.T) {
		e := &Expense{
			Title: "Office purchase",
			Items: []ExpenseItem{
				{Description: "Paper", Quantity: d("2"), UnitPrice: d("100"), Discount: d("10")},
			},
			VatRate: d("7"),
			Deposit: d("50"),
		}
		e.RecalculateTotals()

		// 2*100 - 10*2 = 180; 180*1.07 - 50 = 142.60
		assert.True(t, e.TotalBeforeTax.Equal(d("180")), "got %s", e.TotalBeforeTax)
		assert.True(t, e.TotalNet.Equal(d("142.6")), "got %s", e.TotalNet)
		assert.True(t, e.Items[0].LineTotal.Equal(d("180")))
	})

	t.Run("sums multiple line items", func(t *testing.T) {
		e := &Expense{
			Items: []ExpenseItem{
				{Quantity: d("3"), UnitPrice: d("50"), Discount: d("5")},
				{Quantity: d("1"), UnitPrice: d("200"), Discount: d("0")},
			},
			VatRate: d("0"),
			Deposit: d("0"),
		}
		e.RecalculateTotals()

		// 3*50 - 5*3 = 135; + 200 = 335
		assert.True(t, e.Items[0].LineTotal.Equal(d("135")))
		assert.True(t, e.Items[1].LineTotal.Equal(d("200")))
		assert.True(t, e.TotalBeforeTax.Equal(d("335")))
		assert.True(t, e.TotalNet.Equal(d("335")))
	})

	t.Run("zero items give zero totals", func(t *testing.T) {
		e := &Expense{VatRate: d("7"), Deposit: d("0")}
		e.RecalculateTotals()

		assert.True(t, e.TotalBeforeTax.IsZero())
		assert.True(t, e.TotalNet.IsZero())
	})

	t.Run("deposit can push net total negative", func(t *testing.T) {
		e := &Expense{
			Items:   []ExpenseItem{{Quantity: d("1"), UnitPrice: d("100")}},
			VatRate: d("0"),
			Deposit: d("150"),
		}
		e.RecalculateTotals()

		assert.True(t, e.TotalNet.Equal(d("-50")))
	})

	t.Run("only the net total is rounded", func(t *testing.T) {
		e := &Expense{
			Items:   []ExpenseItem{{Quantity: d("3"), UnitPrice: d("33.333")}},
			VatRate: d("7"),
			Deposit: d("0"),
		}
		e.RecalculateTotals()

		// 99.999 stays exact before tax; 99.999*1.07 = 106.99893 -> 107.00
		assert.True(t, e.TotalBeforeTax.Equal(d("99.999")), "got %s", e.TotalBeforeTax)
		assert.True(t, e.TotalNet.Equal(d("107")), "got %s", e.TotalNet)
	})

	t.Run("overwrites stale submitted totals", func(t *testing.T) {
		e := &Expense{
			Items: []ExpenseItem{
				{Quantity: d("2"), UnitPrice: d("100"), Discount: d("10"), LineTotal: d("9999")},
			},
			VatRate:        d("7"),
			Deposit:        d("50"),
			TotalBeforeTax: d("9999"),
			TotalNet:       d("9999"),
		}
		e.RecalculateTotals()

		assert.True(t, e.TotalBeforeTax.Equal(d("180")))
		assert.True(t, e.TotalNet.Equal(d("142.6")))
	})
}

func TestExpenseValidate(t *testing.T) {
	t.Run("requires a title", func(t *testing.T) {
		e := &Expense{Title: "  "}
		err := e.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("rejects negative vat rate", func(t *testing.T) {
		e := &Expense{Title: "x", VatRate: d("-1")}
		require.Error(t, e.Validate())
	})

	t.Run("rejects negative item amounts", func(t *testing.T) {
		e := &Expense{
			Title: "x",
			Items: []ExpenseItem{{Quantity: d("-1"), UnitPrice: d("10")}},
		}
		require.Error(t, e.Validate())
	})

	t.Run("defaults date and category", func(t *testing.T) {
		e := &Expense{Title: "x"}
		require.NoError(t, e.Validate())
		assert.False(t, e.ExpenseDate.IsZero())
		assert.Equal(t, "OTHER", e.Category)
	})
}

func TestOtherIncomeValidate(t *testing.T) {
	t.Run("requires positive amount", func(t *testing.T) {
		o := &OtherIncome{Title: "Interest", Amount: d("0")}
		require.Error(t, o.Validate())

		o.Amount = d("25.50")
		require.NoError(t, o.Validate())
		assert.False(t, o.IncomeDate.IsZero())
	})
}

func TestJournalEntryValidate(t *testing.T) {
	t.Run("accounts must differ", func(t *testing.T) {
		j := &JournalEntry{DebitAccount: "1010", CreditAccount: "1010", Amount: d("10")}
		require.Error(t, j.Validate())
	})

	t.Run("amount must be positive", func(t *testing.T) {
		j := &JournalEntry{DebitAccount: "1010", CreditAccount: "4900", Amount: d("0")}
		require.Error(t, j.Validate())
	})

	t.Run("valid entry defaults its date", func(t *testing.T) {
		j := &JournalEntry{DebitAccount: "1010", CreditAccount: "4900", Amount: d("100")}
		require.NoError(t, j.Validate())
		assert.False(t, j.EntryDate.IsZero())
	})
}
