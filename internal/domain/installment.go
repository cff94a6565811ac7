package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InstallmentStatus string

const (
	InstallmentStatusActive InstallmentStatus = "actif"
	InstallmentStatusDone   InstallmentStatus = "terminé"
)

// VehicleInstallment is a financing plan for one vehicle: a total principal
// repaid to a lender in monthly amounts. TotalAmount is immutable after
// creation; AmountPaid only grows through recorded payments. NextDueDate is
// stored and advanced by explicit business action, not recomputed from the
// payment count.
type VehicleInstallment struct {
	ID            int32             `json:"id"`
	VehicleID     int32             `json:"vehicle_id"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	MonthlyAmount decimal.Decimal   `json:"monthly_amount"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	NextDueDate   time.Time         `json:"next_due_date"`
	EndDate       time.Time         `json:"end_date"`
	LenderName    string            `json:"lender_name"`
	Status        InstallmentStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Ledger exposes the financing balance as a generic ledger.
func (i *VehicleInstallment) Ledger() Ledger {
	return Ledger{Principal: Money(i.TotalAmount), Paid: Money(i.AmountPaid)}
}

// RemainingAmount is the principal still owed to the lender.
func (i *VehicleInstallment) RemainingAmount() decimal.Decimal {
	return i.Ledger().Remaining()
}

// Settled reports whether the plan is fully repaid.
func (i *VehicleInstallment) Settled() bool {
	return i.Ledger().Settled()
}
