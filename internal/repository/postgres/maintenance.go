package postgres

import (
	"context"
	"database/sql"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `id, vehicle_id, type, COALESCE(description, ''), cost, date, next_due_date, status, created_at`

func collectMaintenances(rows *sql.Rows) ([]domain.Maintenance, error) {
	var items []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Type, &m.Description, &m.Cost, &m.Date,
			&m.NextDueDate, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *maintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE vehicle_id = $1 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, storeErr("maintenance.ListByVehicle", err)
	}
	defer rows.Close()
	return collectMaintenances(rows)
}

func (r *maintenanceRepository) ListInProgress(ctx context.Context) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances WHERE status = 'en_cours' ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("maintenance.ListInProgress", err)
	}
	defer rows.Close()
	return collectMaintenances(rows)
}
