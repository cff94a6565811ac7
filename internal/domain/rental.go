package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental is a booked contract interval. Dates are day-granular and inclusive
// on both ends. Only active rentals occupy the vehicle; rentals are never
// deleted, only transitioned.
type Rental struct {
	ID          int32           `json:"id"`
	VehicleID   int32           `json:"vehicle_id"`
	ClientID    int32           `json:"client_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      RentalStatus    `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RentalPayment is money received against a rental contract. Feeds the
// monthly revenue rollup.
type RentalPayment struct {
	ID       int32           `json:"id"`
	RentalID int32           `json:"rental_id"`
	Amount   decimal.Decimal `json:"amount"`
	Method   PaymentMethod   `json:"method"`
	Date     time.Time       `json:"payment_date"`
	Notes    string          `json:"notes,omitempty"`
}
