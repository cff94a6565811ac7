package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error taxonomy for the engine. Callers branch with errors.As/Is:
// validation and overpayment errors are never retried, not-found maps to a
// 404-equivalent, and transient store errors are safe to retry with backoff.

// ValidationError reports malformed input (bad date range, non-positive
// amount). Rejected synchronously.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// OverpaymentError reports a payment that would push a ledger's remaining
// balance below zero. The payment is rejected, not clamped.
type OverpaymentError struct {
	Remaining decimal.Decimal
	Attempted decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds remaining balance of %s", e.Attempted, e.Remaining)
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d not found", e.Entity, e.ID)
}

// TransientStoreError wraps a data-store timeout or conflict. All engine
// operations are idempotent reads or single guarded writes, so retrying is
// safe.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("transient store failure during %s: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRetryable reports whether err is a TransientStoreError.
func IsRetryable(err error) bool {
	var ts *TransientStoreError
	return errors.As(err, &ts)
}
