package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/domain"
)

// In-memory repository fakes. Each fake keeps its rows in a slice and hands
// out copies, so tests can assert the stored state directly.

type fakeVehicleRepo struct {
	vehicles []domain.Vehicle
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id int32) (*domain.Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			v := f.vehicles[i]
			return &v, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "vehicle", ID: id}
}

func (f *fakeVehicleRepo) List(context.Context) ([]domain.Vehicle, error) {
	return append([]domain.Vehicle(nil), f.vehicles...), nil
}

func (f *fakeVehicleRepo) UpdateStatus(_ context.Context, id int32, status domain.VehicleStatus) error {
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			f.vehicles[i].Status = status
			return nil
		}
	}
	return &domain.NotFoundError{Entity: "vehicle", ID: id}
}

type fakeClientRepo struct {
	clients []domain.Client
}

func (f *fakeClientRepo) GetByID(_ context.Context, id int32) (*domain.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			c := f.clients[i]
			return &c, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "client", ID: id}
}

func (f *fakeClientRepo) List(context.Context) ([]domain.Client, error) {
	return append([]domain.Client(nil), f.clients...), nil
}

type fakeRentalRepo struct {
	rentals []domain.Rental
}

func (f *fakeRentalRepo) ListByVehicle(_ context.Context, vehicleID int32) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rt := range f.rentals {
		if rt.VehicleID == vehicleID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (f *fakeRentalRepo) List(context.Context) ([]domain.Rental, error) {
	return append([]domain.Rental(nil), f.rentals...), nil
}

type fakeRentalPaymentRepo struct {
	payments []domain.RentalPayment
}

func (f *fakeRentalPaymentRepo) SumBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.payments {
		if !p.Date.Before(from) && p.Date.Before(to) {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (f *fakeRentalPaymentRepo) SumAll(context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.payments {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

type fakeMaintenanceRepo struct {
	maintenances []domain.Maintenance
}

func (f *fakeMaintenanceRepo) ListByVehicle(_ context.Context, vehicleID int32) ([]domain.Maintenance, error) {
	var out []domain.Maintenance
	for _, m := range f.maintenances {
		if m.VehicleID == vehicleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) ListInProgress(context.Context) ([]domain.Maintenance, error) {
	var out []domain.Maintenance
	for _, m := range f.maintenances {
		if m.Status == domain.MaintenanceStatusInProgress {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeIncidentRepo struct {
	incidents []domain.Incident
	// vehicleOf resolves incident id to vehicle id, standing in for the
	// rental join the real repository performs.
	vehicleOf map[int32]int32
	receipts  map[int32][]domain.PaymentRecord
	nextID    int32
}

func (f *fakeIncidentRepo) GetByID(_ context.Context, id int32) (*domain.Incident, error) {
	for i := range f.incidents {
		if f.incidents[i].ID == id {
			in := f.incidents[i]
			return &in, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "incident", ID: id}
}

func (f *fakeIncidentRepo) ListByVehicle(_ context.Context, vehicleID int32) ([]domain.Incident, error) {
	var out []domain.Incident
	for _, in := range f.incidents {
		if f.vehicleOf[in.ID] == vehicleID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) ListClaims(context.Context) ([]domain.Incident, error) {
	var out []domain.Incident
	for _, in := range f.incidents {
		if in.Type == domain.IncidentTypeClaim {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) ListPendingClaims(context.Context) ([]domain.Incident, error) {
	var out []domain.Incident
	for _, in := range f.incidents {
		if in.Type == domain.IncidentTypeClaim && in.PaymentStatus != domain.LedgerStatusSettled {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeIncidentRepo) SaveReimbursement(_ context.Context, incident *domain.Incident, receipt *domain.PaymentRecord) error {
	for i := range f.incidents {
		if f.incidents[i].ID == incident.ID {
			f.incidents[i] = *incident
			f.nextID++
			receipt.ID = f.nextID
			receipt.ParentID = incident.ID
			if f.receipts == nil {
				f.receipts = map[int32][]domain.PaymentRecord{}
			}
			f.receipts[incident.ID] = append(f.receipts[incident.ID], *receipt)
			return nil
		}
	}
	return &domain.NotFoundError{Entity: "incident", ID: incident.ID}
}

func (f *fakeIncidentRepo) ListReceipts(_ context.Context, incidentID int32) ([]domain.PaymentRecord, error) {
	return append([]domain.PaymentRecord(nil), f.receipts[incidentID]...), nil
}

type fakeInstallmentRepo struct {
	installments []domain.VehicleInstallment
	payments     map[int32][]domain.PaymentRecord
	nextID       int32
}

func (f *fakeInstallmentRepo) Create(_ context.Context, inst *domain.VehicleInstallment) error {
	f.nextID++
	inst.ID = f.nextID
	f.installments = append(f.installments, *inst)
	return nil
}

func (f *fakeInstallmentRepo) GetByID(_ context.Context, id int32) (*domain.VehicleInstallment, error) {
	for i := range f.installments {
		if f.installments[i].ID == id {
			inst := f.installments[i]
			return &inst, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "installment", ID: id}
}

func (f *fakeInstallmentRepo) List(context.Context) ([]domain.VehicleInstallment, error) {
	return append([]domain.VehicleInstallment(nil), f.installments...), nil
}

func (f *fakeInstallmentRepo) SavePayment(_ context.Context, inst *domain.VehicleInstallment, payment *domain.PaymentRecord) error {
	for i := range f.installments {
		if f.installments[i].ID == inst.ID {
			f.installments[i] = *inst
			f.nextID++
			payment.ID = f.nextID
			payment.ParentID = inst.ID
			if f.payments == nil {
				f.payments = map[int32][]domain.PaymentRecord{}
			}
			f.payments[inst.ID] = append(f.payments[inst.ID], *payment)
			return nil
		}
	}
	return &domain.NotFoundError{Entity: "installment", ID: inst.ID}
}

func (f *fakeInstallmentRepo) ListPayments(_ context.Context, installmentID int32) ([]domain.PaymentRecord, error) {
	return append([]domain.PaymentRecord(nil), f.payments[installmentID]...), nil
}

type fakeExpenseRepo struct {
	expenses []domain.Expense
	nextID   int32
}

func (f *fakeExpenseRepo) Create(_ context.Context, e *domain.Expense) error {
	f.nextID++
	e.ID = f.nextID
	f.expenses = append(f.expenses, *e)
	return nil
}

func (f *fakeExpenseRepo) GetByID(_ context.Context, id int32) (*domain.Expense, error) {
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			e := f.expenses[i]
			return &e, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "expense", ID: id}
}

func (f *fakeExpenseRepo) List(context.Context) ([]domain.Expense, error) {
	return append([]domain.Expense(nil), f.expenses...), nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, e *domain.Expense) error {
	for i := range f.expenses {
		if f.expenses[i].ID == e.ID {
			f.expenses[i] = *e
			return nil
		}
	}
	return &domain.NotFoundError{Entity: "expense", ID: e.ID}
}

type fakeFinancialLogRepo struct {
	entries []domain.FinancialLog
}

func (f *fakeFinancialLogRepo) Append(_ context.Context, log *domain.FinancialLog) error {
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeFinancialLogRepo) List(_ context.Context, limit, offset int32) ([]domain.FinancialLog, error) {
	return append([]domain.FinancialLog(nil), f.entries...), nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
