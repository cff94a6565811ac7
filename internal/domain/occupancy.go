package domain

import "time"

// OccupancyEventType distinguishes the three sources merged into a vehicle's
// timeline.
type OccupancyEventType string

const (
	OccupancyEventRental      OccupancyEventType = "rental"
	OccupancyEventMaintenance OccupancyEventType = "maintenance"
	OccupancyEventBlocked     OccupancyEventType = "blocked"
)

// OccupancyEvent is a derived, read-only interval describing why a vehicle
// is unavailable. Events are recomputed on every query and never persisted.
type OccupancyEvent struct {
	Type      OccupancyEventType `json:"type"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Status    string             `json:"status"`
	Label     string             `json:"label,omitempty"`
}

// Availability is the answer to "when is this vehicle next free". Indefinite
// is set when an in-progress maintenance has no computable end date; callers
// must not read Date in that case. An explicit tagged value instead of a
// string sentinel keeps the date type honest.
type Availability struct {
	Date       time.Time `json:"date"`
	Indefinite bool      `json:"indefinite"`
}

// VehicleCalendar is one row of the fleet calendar view.
type VehicleCalendar struct {
	Vehicle       *Vehicle         `json:"vehicle"`
	Events        []OccupancyEvent `json:"events"`
	NextAvailable Availability     `json:"next_available"`
}
