package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus is the generic debt state shared by installments, expenses and
// insurance claims. It is always derived from the remaining balance, never
// set directly by callers.
type LedgerStatus string

const (
	LedgerStatusOpen    LedgerStatus = "en_attente"
	LedgerStatusPartial LedgerStatus = "partiel"
	LedgerStatusSettled LedgerStatus = "payé"
)

// Ledger is the principal/payments/remaining bundle behind every debt class.
// The invariant remaining == principal - sum(payments) holds by construction:
// Remaining is recomputed from the two stored totals and Apply refuses any
// payment that would break it.
type Ledger struct {
	Principal decimal.Decimal `json:"principal"`
	Paid      decimal.Decimal `json:"paid"`
}

// NewLedger opens a ledger with the given immutable principal and nothing
// received yet.
func NewLedger(principal decimal.Decimal) Ledger {
	return Ledger{Principal: Money(principal), Paid: decimal.Zero}
}

// Remaining returns principal minus cumulative payments, rounded to the
// currency's minor unit. A rounding artifact can never push it negative:
// Apply rejects overpayments, and the final subtraction is clamped to zero.
func (l Ledger) Remaining() decimal.Decimal {
	r := Money(l.Principal.Sub(l.Paid))
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Settled reports whether the full principal has been received.
func (l Ledger) Settled() bool {
	return l.Remaining().IsZero()
}

// Status derives the generic state from the remaining balance. Transitions
// only move forward; settled is terminal because payments are append-only.
func (l Ledger) Status() LedgerStatus {
	switch {
	case l.Settled():
		return LedgerStatusSettled
	case l.Paid.IsPositive():
		return LedgerStatusPartial
	default:
		return LedgerStatusOpen
	}
}

// Apply validates a payment against the current balance and returns the
// ledger after it. Fails with a ValidationError for non-positive amounts and
// an OverpaymentError when amount exceeds the remaining balance; the ledger
// is unchanged on failure.
func (l Ledger) Apply(amount decimal.Decimal) (Ledger, error) {
	amount = Money(amount)
	if !amount.IsPositive() {
		return l, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if amount.GreaterThan(l.Remaining()) {
		return l, &OverpaymentError{Remaining: l.Remaining(), Attempted: amount}
	}
	return Ledger{Principal: l.Principal, Paid: Money(l.Paid.Add(amount))}, nil
}

// PaymentMethod mirrors the payment channels the agency records.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// PaymentRecord is one append-only entry against a ledger-backed entity.
// Records are immutable once created and their append order is their
// temporal order.
type PaymentRecord struct {
	ID        int32           `json:"id"`
	ParentID  int32           `json:"parent_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    PaymentMethod   `json:"method"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
