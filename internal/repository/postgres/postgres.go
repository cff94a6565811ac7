package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	_ "github.com/lib/pq"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.ClientRepository
	repository.UserRepository
	repository.RentalRepository
	repository.RentalPaymentRepository
	repository.MaintenanceRepository
	repository.IncidentRepository
	repository.InstallmentRepository
	repository.ExpenseRepository
	repository.NotificationRepository
	repository.FinancialLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		VehicleRepository:       NewVehicleRepository(db),
		ClientRepository:        NewClientRepository(db),
		UserRepository:          NewUserRepository(db),
		RentalRepository:        NewRentalRepository(db),
		RentalPaymentRepository: NewRentalPaymentRepository(db),
		MaintenanceRepository:   NewMaintenanceRepository(db),
		IncidentRepository:      NewIncidentRepository(db),
		InstallmentRepository:   NewInstallmentRepository(db),
		ExpenseRepository:       NewExpenseRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		FinancialLogRepository:  NewFinancialLogRepository(db),
	}
}

// storeErr classifies connection-level failures as retryable so callers can
// back off instead of surfacing them as permanent errors.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.TransientStoreError{Op: op, Err: err}
	}
	return err
}
