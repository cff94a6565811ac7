package postgres

import (
	"context"
	"database/sql"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, title, category, amount, due_date, status, payment_date, COALESCE(note, ''), created_at`

func scanExpense(row interface{ Scan(...any) error }) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.Title, &e.Category, &e.Amount, &e.DueDate, &e.Status, &e.PaymentDate,
		&e.Note, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (title, category, amount, due_date, status, payment_date, note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	logger.DatabaseCall("INSERT", "expenses", "title", e.Title)
	err := r.db.QueryRowContext(ctx, query, e.Title, e.Category, e.Amount, e.DueDate, e.Status,
		e.PaymentDate, e.Note, e.CreatedAt).Scan(&e.ID)
	logger.DatabaseResult("INSERT", 1, err, "expenseID", e.ID)
	return storeErr("expense.Create", err)
}

func (r *expenseRepository) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "expense", ID: id}
	}
	if err != nil {
		return nil, storeErr("expense.GetByID", err)
	}
	return e, nil
}

func (r *expenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("expense.List", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET title = $1, category = $2, amount = $3, due_date = $4, status = $5,
	          payment_date = $6, note = $7 WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query, e.Title, e.Category, e.Amount, e.DueDate, e.Status,
		e.PaymentDate, e.Note, e.ID)
	if err != nil {
		return storeErr("expense.Update", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "expense", ID: e.ID}
	}
	return nil
}
