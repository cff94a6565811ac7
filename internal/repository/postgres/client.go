package postgres

import (
	"context"
	"database/sql"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	query := `SELECT id, full_name, phone, email, license_number, created_at FROM clients WHERE id = $1`
	var c domain.Client
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.LicenseNumber, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "client", ID: id}
	}
	if err != nil {
		return nil, storeErr("client.GetByID", err)
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT id, full_name, phone, email, license_number, created_at FROM clients ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("client.List", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.LicenseNumber, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
