package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminePrince/bmsbackend/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	t.Run("Both ends count", func(t *testing.T) {
		days, err := RentalDays(date(2024, time.March, 12), date(2024, time.March, 15))
		require.NoError(t, err)
		assert.Equal(t, 4, days)
	})

	t.Run("Same-day rental is one billable day", func(t *testing.T) {
		days, err := RentalDays(date(2024, time.March, 12), date(2024, time.March, 12))
		require.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("Month boundary", func(t *testing.T) {
		days, err := RentalDays(date(2024, time.February, 28), date(2024, time.March, 2))
		require.NoError(t, err)
		assert.Equal(t, 4, days) // 2024 is a leap year
	})

	t.Run("Inverted interval is rejected", func(t *testing.T) {
		var validation *domain.ValidationError
		_, err := RentalDays(date(2024, time.March, 15), date(2024, time.March, 12))
		require.True(t, errors.As(err, &validation))
	})
}

func TestQuoteRentalCost(t *testing.T) {
	quote, err := QuoteRentalCost(date(2024, time.March, 12), date(2024, time.March, 15), decimal.RequireFromString("250"))
	require.NoError(t, err)

	assert.Equal(t, 4, quote.Days)
	assert.True(t, quote.PricePerDay.Equal(decimal.RequireFromString("250")))
	assert.True(t, quote.TotalCost.Equal(decimal.RequireFromString("1000")))
}

func TestQuoteRentalCostRounding(t *testing.T) {
	quote, err := QuoteRentalCost(date(2024, time.March, 1), date(2024, time.March, 3), decimal.RequireFromString("199.995"))
	require.NoError(t, err)

	// The daily rate is rounded to the minor unit before multiplication.
	assert.True(t, quote.PricePerDay.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, quote.TotalCost.Equal(decimal.RequireFromString("600.00")))
}
