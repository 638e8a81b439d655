package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierValidate(t *testing.T) {
	t.Run("requires name and code", func(t *testing.T) {
		s := &Supplier{Code: "S01"}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")

		s = &Supplier{Name: "Acme"}
		err = s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code is required")
	})

	t.Run("uppercases the code", func(t *testing.T) {
		s := &Supplier{Name: "Acme", Code: "s01"}
		require.NoError(t, s.Validate())
		assert.Equal(t, "S01", s.Code)
	})

	t.Run("defaults status to active", func(t *testing.T) {
		s := &Supplier{Name: "Acme", Code: "S01"}
		require.NoError(t, s.Validate())
		assert.Equal(t, SupplierStatusActive, s.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		s := &Supplier{Name: "Acme", Code: "S01", Status: "dormant"}
		require.Error(t, s.Validate())
	})

	t.Run("rejects negative credit terms", func(t *testing.T) {
		s := &Supplier{Name: "Acme", Code: "S01", CreditDays: -1}
		require.Error(t, s.Validate())

		s = &Supplier{Name: "Acme", Code: "S01", CreditLimit: decimal.NewFromInt(-100)}
		require.Error(t, s.Validate())
	})
}

func TestCustomerValidate(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		c := &Customer{}
		require.Error(t, c.Validate())
	})

	t.Run("defaults type to individual", func(t *testing.T) {
		c := &Customer{Name: "Jordan"}
		require.NoError(t, c.Validate())
		assert.Equal(t, CustomerTypeIndividual, c.Type)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		c := &Customer{Name: "Jordan", Type: "collective"}
		require.Error(t, c.Validate())
	})
}
