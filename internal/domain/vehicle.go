package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// Vehicle is a fleet car. Status is a cache updated on rental/maintenance
// transitions for cheap list views; the availability resolver is the source
// of truth for scheduling decisions and must always win over this field.
type Vehicle struct {
	ID                 int32           `json:"id"`
	Brand              string          `json:"brand"`
	Model              string          `json:"model"`
	Year               int32           `json:"year"`
	LicensePlate       string          `json:"license_plate"`
	PricePerDay        decimal.Decimal `json:"price_per_day"`
	Status             VehicleStatus   `json:"status"`
	Mileage            int32           `json:"mileage"`
	InsuranceExpiry    *time.Time      `json:"insurance_expiry,omitempty"`
	RegistrationExpiry *time.Time      `json:"registration_expiry,omitempty"`
	InspectionExpiry   *time.Time      `json:"inspection_expiry,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Name is the display label used on calendar payloads.
func (v *Vehicle) Name() string {
	return v.Brand + " " + v.Model
}
