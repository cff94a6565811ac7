package postgres

import (
	"context"
	"database/sql"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type incidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) repository.IncidentRepository {
	return &incidentRepository{db: db}
}

const incidentColumns = `i.id, i.rental_id, i.type, COALESCE(i.description, ''), i.amount, i.status, i.date,
	i.created_at, i.reimbursement_received, i.reimbursement_expected_date, i.payment_status`

func scanIncident(row interface{ Scan(...any) error }) (*domain.Incident, error) {
	var in domain.Incident
	err := row.Scan(&in.ID, &in.RentalID, &in.Type, &in.Description, &in.Amount, &in.Status, &in.Date,
		&in.CreatedAt, &in.ReimbursementReceived, &in.ReimbursementExpectedDate, &in.PaymentStatus)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func collectIncidents(rows *sql.Rows) ([]domain.Incident, error) {
	var incidents []domain.Incident
	for rows.Next() {
		in, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, *in)
	}
	return incidents, rows.Err()
}

func (r *incidentRepository) GetByID(ctx context.Context, id int32) (*domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents i WHERE i.id = $1`
	in, err := scanIncident(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "incident", ID: id}
	}
	if err != nil {
		return nil, storeErr("incident.GetByID", err)
	}
	return in, nil
}

func (r *incidentRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents i
	          JOIN rentals r ON i.rental_id = r.id
	          WHERE r.vehicle_id = $1 ORDER BY i.date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, storeErr("incident.ListByVehicle", err)
	}
	defer rows.Close()
	return collectIncidents(rows)
}

func (r *incidentRepository) ListClaims(ctx context.Context) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents i WHERE i.type = 'sinistre' ORDER BY i.date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("incident.ListClaims", err)
	}
	defer rows.Close()
	return collectIncidents(rows)
}

func (r *incidentRepository) ListPendingClaims(ctx context.Context) ([]domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents i
	          WHERE i.type = 'sinistre' AND i.payment_status IN ('en_attente', 'partiel') ORDER BY i.date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("incident.ListPendingClaims", err)
	}
	defer rows.Close()
	return collectIncidents(rows)
}

// SaveReimbursement appends a claim receipt and updates the incident's
// received total and derived payment status in a single transaction, so the
// cached balance can never drift from the receipt log.
func (r *incidentRepository) SaveReimbursement(ctx context.Context, incident *domain.Incident, receipt *domain.PaymentRecord) error {
	logger.EnterMethod("incidentRepository.SaveReimbursement", "incidentID", incident.ID, "amount", receipt.Amount)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("incident.SaveReimbursement", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO claim_receipts (incident_id, amount, date, method, note, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, incident.ID, receipt.Amount, receipt.Date, receipt.Method,
		receipt.Note, receipt.CreatedAt).Scan(&receipt.ID)
	if err != nil {
		logger.ExitMethodWithError("incidentRepository.SaveReimbursement", err)
		return storeErr("incident.SaveReimbursement", err)
	}
	receipt.ParentID = incident.ID

	update := `UPDATE incidents SET reimbursement_received = $1, payment_status = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, update, incident.ReimbursementReceived, incident.PaymentStatus, incident.ID)
	if err != nil {
		return storeErr("incident.SaveReimbursement", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "incident", ID: incident.ID}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("incident.SaveReimbursement", err)
	}
	logger.ExitMethod("incidentRepository.SaveReimbursement", "receiptID", receipt.ID)
	return nil
}

func (r *incidentRepository) ListReceipts(ctx context.Context, incidentID int32) ([]domain.PaymentRecord, error) {
	query := `SELECT id, incident_id, amount, date, method, COALESCE(note, ''), created_at
	          FROM claim_receipts WHERE incident_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, incidentID)
	if err != nil {
		return nil, storeErr("incident.ListReceipts", err)
	}
	defer rows.Close()

	var receipts []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.ParentID, &p.Amount, &p.Date, &p.Method, &p.Note, &p.CreatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, p)
	}
	return receipts, rows.Err()
}
