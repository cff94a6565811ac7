package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type IncidentType string

const (
	IncidentTypeFine     IncidentType = "amende"
	IncidentTypeAccident IncidentType = "accident"
	IncidentTypeClaim    IncidentType = "sinistre"
)

type IncidentStatus string

const (
	IncidentStatusOpen      IncidentStatus = "ouvert"
	IncidentStatusPaid      IncidentStatus = "payé"
	IncidentStatusContested IncidentStatus = "contesté"
)

// ImmobilizationDays is the fixed occupancy window that follows an accident
// or sinistre, starting on the incident date. Fines never immobilize.
const ImmobilizationDays = 3

// Incident is an event raised against a rental: a fine, an accident or an
// insurance claim (sinistre). Accident and sinistre incidents immobilize the
// vehicle; sinistre incidents additionally carry the insurance reimbursement
// ledger (Amount is the expected reimbursement, Ledger.Paid the sum
// received, PaymentStatus the derived state).
type Incident struct {
	ID          int32          `json:"id"`
	RentalID    int32          `json:"rental_id"`
	Type        IncidentType   `json:"type"`
	Description string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      IncidentStatus `json:"status"`
	Date        time.Time      `json:"date"`
	CreatedAt   time.Time      `json:"created_at"`

	// Reimbursement tracking, meaningful for sinistre incidents only.
	ReimbursementReceived     decimal.Decimal `json:"reimbursement_received"`
	ReimbursementExpectedDate *time.Time      `json:"reimbursement_expected_date,omitempty"`
	PaymentStatus             LedgerStatus    `json:"payment_status"`
}

// Immobilizes reports whether this incident blocks the vehicle.
func (i *Incident) Immobilizes() bool {
	return i.Type == IncidentTypeAccident || i.Type == IncidentTypeClaim
}

// ClaimLedger exposes the reimbursement balance as a generic ledger.
func (i *Incident) ClaimLedger() Ledger {
	return Ledger{Principal: Money(i.Amount), Paid: Money(i.ReimbursementReceived)}
}

// RemainingReimbursement is the expected reimbursement still outstanding.
func (i *Incident) RemainingReimbursement() decimal.Decimal {
	return i.ClaimLedger().Remaining()
}
