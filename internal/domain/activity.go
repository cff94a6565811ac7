package domain

import "time"

// FinancialLog is the audit trail appended after every ledger mutation
// (installment payment, expense settle, claim reimbursement).
type FinancialLog struct {
	ID          int32     `json:"id"`
	UserID      int32     `json:"user_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
