package http

import (
	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/domain"
)

// indefiniteAvailability is the wire rendering of an availability with no
// computable date. Internally availability is a tagged value; the French
// label exists only at this boundary for the back-office UI.
const indefiniteAvailability = "En maintenance"

type occupancyEventDTO struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Label     string `json:"label,omitempty"`
}

type vehicleCalendarDTO struct {
	CarID             int32               `json:"car_id"`
	CarName           string              `json:"car_name"`
	LicensePlate      string              `json:"license_plate"`
	Events            []occupancyEventDTO `json:"events"`
	NextAvailableDate string              `json:"next_available_date"`
}

type availabilityDTO struct {
	VehicleID         int32  `json:"vehicle_id"`
	NextAvailableDate string `json:"next_available_date"`
	AvailableToday    bool   `json:"available_today"`
}

func renderAvailability(a domain.Availability) string {
	if a.Indefinite {
		return indefiniteAvailability
	}
	return a.Date.Format(dateLayout)
}

func renderEvents(events []domain.OccupancyEvent) []occupancyEventDTO {
	out := make([]occupancyEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, occupancyEventDTO{
			Type:      string(ev.Type),
			StartDate: ev.StartDate.Format(dateLayout),
			EndDate:   ev.EndDate.Format(dateLayout),
			Status:    ev.Status,
			Label:     ev.Label,
		})
	}
	return out
}

type createInstallmentRequest struct {
	UserID        int32           `json:"user_id"`
	VehicleID     int32           `json:"vehicle_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	NextDueDate   string          `json:"next_due_date"`
	EndDate       string          `json:"end_date"`
	LenderName    string          `json:"lender_name"`
	Notes         string          `json:"notes"`
}

type recordPaymentRequest struct {
	UserID int32           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

type createExpenseRequest struct {
	UserID   int32           `json:"user_id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date"`
	Note     string          `json:"note"`
}

type markExpensePaidRequest struct {
	UserID      int32  `json:"user_id"`
	PaymentDate string `json:"payment_date"`
}

type markReadRequest struct {
	UserID int32 `json:"user_id"`
}

type notificationListDTO struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}
