package postgres

import (
	"context"
	"database/sql"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type installmentRepository struct {
	db *sql.DB
}

func NewInstallmentRepository(db *sql.DB) repository.InstallmentRepository {
	return &installmentRepository{db: db}
}

const installmentColumns = `id, vehicle_id, total_amount, monthly_amount, amount_paid, next_due_date,
	end_date, lender_name, status, COALESCE(notes, ''), created_at`

func scanInstallment(row interface{ Scan(...any) error }) (*domain.VehicleInstallment, error) {
	var inst domain.VehicleInstallment
	err := row.Scan(&inst.ID, &inst.VehicleID, &inst.TotalAmount, &inst.MonthlyAmount, &inst.AmountPaid,
		&inst.NextDueDate, &inst.EndDate, &inst.LenderName, &inst.Status, &inst.Notes, &inst.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *installmentRepository) Create(ctx context.Context, inst *domain.VehicleInstallment) error {
	query := `INSERT INTO vehicle_installments (vehicle_id, total_amount, monthly_amount, amount_paid,
	          next_due_date, end_date, lender_name, status, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	logger.DatabaseCall("INSERT", "vehicle_installments", "vehicleID", inst.VehicleID)
	err := r.db.QueryRowContext(ctx, query, inst.VehicleID, inst.TotalAmount, inst.MonthlyAmount,
		inst.AmountPaid, inst.NextDueDate, inst.EndDate, inst.LenderName, inst.Status, inst.Notes,
		inst.CreatedAt).Scan(&inst.ID)
	logger.DatabaseResult("INSERT", 1, err, "installmentID", inst.ID)
	return storeErr("installment.Create", err)
}

func (r *installmentRepository) GetByID(ctx context.Context, id int32) (*domain.VehicleInstallment, error) {
	query := `SELECT ` + installmentColumns + ` FROM vehicle_installments WHERE id = $1`
	inst, err := scanInstallment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "installment", ID: id}
	}
	if err != nil {
		return nil, storeErr("installment.GetByID", err)
	}
	return inst, nil
}

func (r *installmentRepository) List(ctx context.Context) ([]domain.VehicleInstallment, error) {
	query := `SELECT ` + installmentColumns + ` FROM vehicle_installments ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("installment.List", err)
	}
	defer rows.Close()

	var installments []domain.VehicleInstallment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, *inst)
	}
	return installments, rows.Err()
}

// SavePayment appends an installment payment and updates the plan's paid
// total and status in a single transaction, so the cached balance can never
// drift from the payment log.
func (r *installmentRepository) SavePayment(ctx context.Context, inst *domain.VehicleInstallment, payment *domain.PaymentRecord) error {
	logger.EnterMethod("installmentRepository.SavePayment", "installmentID", inst.ID, "amount", payment.Amount)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("installment.SavePayment", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO installment_payments (installment_id, amount, date, method, note, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, inst.ID, payment.Amount, payment.Date, payment.Method,
		payment.Note, payment.CreatedAt).Scan(&payment.ID)
	if err != nil {
		logger.ExitMethodWithError("installmentRepository.SavePayment", err)
		return storeErr("installment.SavePayment", err)
	}
	payment.ParentID = inst.ID

	update := `UPDATE vehicle_installments SET amount_paid = $1, status = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, update, inst.AmountPaid, inst.Status, inst.ID)
	if err != nil {
		return storeErr("installment.SavePayment", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "installment", ID: inst.ID}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("installment.SavePayment", err)
	}
	logger.ExitMethod("installmentRepository.SavePayment", "paymentID", payment.ID)
	return nil
}

func (r *installmentRepository) ListPayments(ctx context.Context, installmentID int32) ([]domain.PaymentRecord, error) {
	query := `SELECT id, installment_id, amount, date, method, COALESCE(note, ''), created_at
	          FROM installment_payments WHERE installment_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, installmentID)
	if err != nil {
		return nil, storeErr("installment.ListPayments", err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Amount, &p.Date, &p.Method, &p.Note, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
