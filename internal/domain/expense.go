package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "en_attente"
	ExpenseStatusPaid    ExpenseStatus = "payé"
)

// Expense is a recurring or one-off agency charge (rent, utilities,
// insurance premiums). Expenses settle all-or-nothing: there is no partial
// state, a settle either covers the full amount or is rejected.
type Expense struct {
	ID          int32           `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      ExpenseStatus   `json:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
