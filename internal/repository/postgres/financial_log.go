package postgres

import (
	"context"
	"database/sql"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type financialLogRepository struct {
	db *sql.DB
}

func NewFinancialLogRepository(db *sql.DB) repository.FinancialLogRepository {
	return &financialLogRepository{db: db}
}

func (r *financialLogRepository) Append(ctx context.Context, log *domain.FinancialLog) error {
	query := `INSERT INTO financial_logs (user_id, action, description, created_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, log.UserID, log.Action, log.Description, log.CreatedAt).Scan(&log.ID)
	return storeErr("financialLog.Append", err)
}

func (r *financialLogRepository) List(ctx context.Context, limit, offset int32) ([]domain.FinancialLog, error) {
	query := `SELECT id, user_id, action, description, created_at
	          FROM financial_logs ORDER BY id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, storeErr("financialLog.List", err)
	}
	defer rows.Close()

	var logs []domain.FinancialLog
	for rows.Next() {
		var l domain.FinancialLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Description, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
