package utils

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
)

// RentalQuote is the projected cost of a rental interval before it is
// booked. Dates are inclusive on both ends, so a one-day rental starting and
// ending on the same date counts one billable day.
type RentalQuote struct {
	Days        int             `json:"days"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// RentalDays returns the inclusive billable day count for an interval.
func RentalDays(start, end time.Time) (int, error) {
	days := clock.DaysBetween(start, end) + 1
	if days < 1 {
		return 0, &domain.ValidationError{Field: "range", Reason: "end date before start date"}
	}
	return days, nil
}

// QuoteRentalCost prices an interval at a flat daily rate.
func QuoteRentalCost(start, end time.Time, pricePerDay decimal.Decimal) (RentalQuote, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return RentalQuote{}, err
	}
	rate := domain.Money(pricePerDay)
	return RentalQuote{
		Days:        days,
		PricePerDay: rate,
		TotalCost:   domain.Money(rate.Mul(decimal.NewFromInt(int64(days)))),
	}, nil
}
