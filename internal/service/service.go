package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/utils"
)

// RentalQuoteResult pairs a cost projection with whether the interval is
// actually free of conflicting occupancy.
type RentalQuoteResult struct {
	Quote     utils.RentalQuote       `json:"quote"`
	Available bool                    `json:"available"`
	Conflicts []domain.OccupancyEvent `json:"conflicts,omitempty"`
}

// AvailabilityService is the occupancy resolver: a pure projection over
// rentals, maintenance windows and incident immobilizations. It performs no
// writes and is safe to call concurrently; it is the single enforcement
// point consulted before any booking.
type AvailabilityService interface {
	GetEvents(ctx context.Context, vehicleID int32, rangeStart, rangeEnd time.Time) ([]domain.OccupancyEvent, error)
	NextAvailableDate(ctx context.Context, vehicleID int32, asOf time.Time) (domain.Availability, error)
	IsAvailableToday(ctx context.Context, vehicleID int32) (bool, error)
	GetFleetCalendar(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.VehicleCalendar, error)
	GetRentalQuote(ctx context.Context, vehicleID int32, rangeStart, rangeEnd time.Time) (*RentalQuoteResult, error)
}

// InstallmentService manages vehicle financing plans and their payment log.
type InstallmentService interface {
	Create(ctx context.Context, userID int32, inst *domain.VehicleInstallment) error
	Get(ctx context.Context, id int32) (*domain.VehicleInstallment, error)
	List(ctx context.Context) ([]domain.VehicleInstallment, error)
	RecordPayment(ctx context.Context, userID, installmentID int32, amount decimal.Decimal, method domain.PaymentMethod, note string) (*domain.PaymentRecord, error)
	GetPaymentHistory(ctx context.Context, installmentID int32) ([]domain.PaymentRecord, error)
}

// ExpenseFilter narrows expense listings the way the back-office list page
// does.
type ExpenseFilter struct {
	Category string
	Status   domain.ExpenseStatus
	Month    time.Month // zero value means no month filter
}

// ExpenseService manages agency charges. Expenses settle all-or-nothing.
type ExpenseService interface {
	Create(ctx context.Context, userID int32, e *domain.Expense) error
	Get(ctx context.Context, id int32) (*domain.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error)
	MarkPaid(ctx context.Context, userID, expenseID int32, paymentDate *time.Time) (*domain.Expense, error)
}

// ClaimService manages insurance reimbursement claims carried by sinistre
// incidents.
type ClaimService interface {
	ListClaims(ctx context.Context) ([]domain.Incident, error)
	RecordReimbursement(ctx context.Context, userID, incidentID int32, amount decimal.Decimal, method domain.PaymentMethod, note string) (*domain.PaymentRecord, error)
	GetReceipts(ctx context.Context, incidentID int32) ([]domain.PaymentRecord, error)
}

// FinancialService is the read-side aggregator. Every figure is recomputed
// on demand; nothing is cached.
type FinancialService interface {
	GetStats(ctx context.Context) (*domain.FinancialStats, error)
	GetAnalytics(ctx context.Context) (*domain.AnalyticsStats, error)
}

// NotificationService records and serves alert notifications. It is the
// sink the deadline sweep writes through.
type NotificationService interface {
	Notify(ctx context.Context, userID int32, title, message string, category domain.NotificationCategory) (*domain.Notification, error)
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EmailService delivers deadline alerts by mail in addition to the stored
// notification records.
type EmailService interface {
	SendDeadlineAlert(ctx context.Context, toEmail, toName, subject, message string) error
}
