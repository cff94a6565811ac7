package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/domain"
)

// The engine reads vehicles, clients, users, rentals, maintenances and
// incidents as externally-owned collections, and owns the write surface for
// the ledger-backed entities (installments, expenses, claim reimbursements)
// plus notifications and the financial audit log.

type VehicleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	// UpdateStatus refreshes the cached lifecycle status. The cache is a UI
	// hint only; scheduling decisions go through the availability resolver.
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

type UserRepository interface {
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type RentalRepository interface {
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)
}

type RentalPaymentRepository interface {
	// SumBetween totals rental payments with from <= date < to.
	SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumAll(ctx context.Context) (decimal.Decimal, error)
}

type MaintenanceRepository interface {
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error)
	ListInProgress(ctx context.Context) ([]domain.Maintenance, error)
}

type IncidentRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Incident, error)
	// ListByVehicle resolves the incident's rental to its vehicle.
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Incident, error)
	ListClaims(ctx context.Context) ([]domain.Incident, error)
	ListPendingClaims(ctx context.Context) ([]domain.Incident, error)
	// SaveReimbursement appends the receipt and updates the incident's
	// reimbursement fields in one transaction.
	SaveReimbursement(ctx context.Context, incident *domain.Incident, receipt *domain.PaymentRecord) error
	ListReceipts(ctx context.Context, incidentID int32) ([]domain.PaymentRecord, error)
}

type InstallmentRepository interface {
	Create(ctx context.Context, inst *domain.VehicleInstallment) error
	GetByID(ctx context.Context, id int32) (*domain.VehicleInstallment, error)
	List(ctx context.Context) ([]domain.VehicleInstallment, error)
	// SavePayment appends the payment and updates the installment's paid
	// total and status in one transaction.
	SavePayment(ctx context.Context, inst *domain.VehicleInstallment, payment *domain.PaymentRecord) error
	ListPayments(ctx context.Context, installmentID int32) ([]domain.PaymentRecord, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id int32) (*domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type FinancialLogRepository interface {
	Append(ctx context.Context, log *domain.FinancialLog) error
	List(ctx context.Context, limit, offset int32) ([]domain.FinancialLog, error)
}
