package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, vehicle_id, client_id, start_date, end_date, price_per_day, total_price,
	status, COALESCE(notes, ''), created_at`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	var rt domain.Rental
	err := row.Scan(&rt.ID, &rt.VehicleID, &rt.ClientID, &rt.StartDate, &rt.EndDate, &rt.PricePerDay,
		&rt.TotalPrice, &rt.Status, &rt.Notes, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *rentalRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, storeErr("rental.ListByVehicle", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("rental.List", err)
	}
	defer rows.Close()
	return collectRentals(rows)
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

type rentalPaymentRepository struct {
	db *sql.DB
}

func NewRentalPaymentRepository(db *sql.DB) repository.RentalPaymentRepository {
	return &rentalPaymentRepository{db: db}
}

func (r *rentalPaymentRepository) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM rental_payments WHERE payment_date >= $1 AND payment_date < $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, storeErr("rentalPayment.SumBetween", err)
	}
	return total, nil
}

func (r *rentalPaymentRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM rental_payments`
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	if err != nil {
		return decimal.Zero, storeErr("rentalPayment.SumAll", err)
	}
	return total, nil
}
