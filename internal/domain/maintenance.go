package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceStatusInProgress MaintenanceStatus = "en_cours"
	MaintenanceStatusDone       MaintenanceStatus = "terminé"
)

type MaintenanceType string

const (
	MaintenanceTypeOilChange  MaintenanceType = "vidange"
	MaintenanceTypeRepair     MaintenanceType = "réparation"
	MaintenanceTypeInspection MaintenanceType = "contrôle"
)

// MaintenanceWindowDays is how long a maintenance entry occupies its vehicle
// while in progress. Windows have a single date; the duration is implicit.
const MaintenanceWindowDays = 1

// Maintenance is a shop window for one vehicle. It occupies the vehicle only
// while status is en_cours; once terminé it drops out of the timeline.
type Maintenance struct {
	ID          int32             `json:"id"`
	VehicleID   int32             `json:"vehicle_id"`
	Type        MaintenanceType   `json:"type"`
	Description string            `json:"description"`
	Cost        decimal.Decimal   `json:"cost"`
	Date        time.Time         `json:"date"`
	NextDueDate time.Time         `json:"next_due_date"`
	Status      MaintenanceStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}
