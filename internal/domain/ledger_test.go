package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerApply(t *testing.T) {
	t.Run("Partial payment reduces remaining", func(t *testing.T) {
		ledger := NewLedger(decimal.NewFromInt(5000))

		ledger, err := ledger.Apply(decimal.NewFromInt(2000))
		require.NoError(t, err)

		assert.True(t, ledger.Remaining().Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, LedgerStatusPartial, ledger.Status())
		assert.False(t, ledger.Settled())
	})

	t.Run("Exact settlement closes the ledger", func(t *testing.T) {
		ledger := NewLedger(decimal.NewFromInt(1500))

		ledger, err := ledger.Apply(decimal.NewFromInt(1000))
		require.NoError(t, err)
		ledger, err = ledger.Apply(decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.True(t, ledger.Remaining().IsZero())
		assert.True(t, ledger.Settled())
		assert.Equal(t, LedgerStatusSettled, ledger.Status())
	})

	t.Run("Overpayment is rejected and leaves the ledger unchanged", func(t *testing.T) {
		ledger := NewLedger(decimal.NewFromInt(1000))
		ledger, err := ledger.Apply(decimal.NewFromInt(800))
		require.NoError(t, err)

		after, err := ledger.Apply(decimal.NewFromInt(300))

		var overpayment *OverpaymentError
		require.True(t, errors.As(err, &overpayment))
		assert.True(t, overpayment.Remaining.Equal(decimal.NewFromInt(200)))
		assert.True(t, overpayment.Attempted.Equal(decimal.NewFromInt(300)))
		assert.True(t, after.Paid.Equal(ledger.Paid))
	})

	t.Run("Non-positive amounts are rejected", func(t *testing.T) {
		ledger := NewLedger(decimal.NewFromInt(1000))

		var validation *ValidationError
		_, err := ledger.Apply(decimal.Zero)
		require.True(t, errors.As(err, &validation))

		_, err = ledger.Apply(decimal.NewFromInt(-50))
		require.True(t, errors.As(err, &validation))
	})

	t.Run("Remaining equals principal minus payments", func(t *testing.T) {
		ledger := NewLedger(decimal.RequireFromString("999.99"))
		payments := []string{"100.10", "250.25", "0.64"}

		paid := decimal.Zero
		for _, p := range payments {
			amount := decimal.RequireFromString(p)
			var err error
			ledger, err = ledger.Apply(amount)
			require.NoError(t, err)
			paid = paid.Add(amount)
		}

		assert.True(t, ledger.Remaining().Equal(ledger.Principal.Sub(paid)))
	})
}

func TestLedgerStatusProgression(t *testing.T) {
	ledger := NewLedger(decimal.NewFromInt(300))
	assert.Equal(t, LedgerStatusOpen, ledger.Status())

	ledger, err := ledger.Apply(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, LedgerStatusPartial, ledger.Status())

	ledger, err = ledger.Apply(decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.Equal(t, LedgerStatusSettled, ledger.Status())
}

func TestMoneyRounding(t *testing.T) {
	assert.True(t, Money(decimal.RequireFromString("10.005")).Equal(decimal.RequireFromString("10.01")))
	assert.True(t, Money(decimal.RequireFromString("10.004")).Equal(decimal.RequireFromString("10.00")))
	assert.True(t, MoneyFromFloat(19.999).Equal(decimal.RequireFromString("20.00")))
}

func TestIncidentImmobilizes(t *testing.T) {
	assert.False(t, (&Incident{Type: IncidentTypeFine}).Immobilizes())
	assert.True(t, (&Incident{Type: IncidentTypeAccident}).Immobilizes())
	assert.True(t, (&Incident{Type: IncidentTypeClaim}).Immobilizes())
}
