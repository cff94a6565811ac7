package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/events"
)

func newExpenseFixture(now time.Time) (*fakeExpenseRepo, *fakeFinancialLogRepo, *events.Bus, ExpenseService) {
	repo := &fakeExpenseRepo{}
	logRepo := &fakeFinancialLogRepo{}
	bus := events.NewBus()
	svc := NewExpenseService(repo, logRepo, bus, clock.Fixed(now))
	return repo, logRepo, bus, svc
}

func TestExpenseCreate(t *testing.T) {
	now := day(2024, time.June, 1)
	ctx := context.Background()

	t.Run("Defaults to pending", func(t *testing.T) {
		repo, logRepo, _, svc := newExpenseFixture(now)

		e := &domain.Expense{Title: "Loyer agence", Category: "loyer", Amount: dec("4500"), DueDate: day(2024, time.June, 5)}
		require.NoError(t, svc.Create(ctx, 1, e))

		stored, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ExpenseStatusPending, stored.Status)
		assert.Nil(t, stored.PaymentDate)
		require.Len(t, logRepo.entries, 1)
		assert.Equal(t, "EXPENSE_CREATE", logRepo.entries[0].Action)
	})

	t.Run("Missing title or amount is rejected", func(t *testing.T) {
		_, _, _, svc := newExpenseFixture(now)

		var validation *domain.ValidationError
		err := svc.Create(ctx, 1, &domain.Expense{Amount: dec("100")})
		require.True(t, errors.As(err, &validation))

		err = svc.Create(ctx, 1, &domain.Expense{Title: "X", Amount: dec("0")})
		require.True(t, errors.As(err, &validation))
	})
}

func TestExpenseMarkPaid(t *testing.T) {
	now := day(2024, time.June, 10)
	ctx := context.Background()

	seed := func(svc ExpenseService) int32 {
		e := &domain.Expense{Title: "Assurance flotte", Category: "assurance", Amount: dec("12000"), DueDate: day(2024, time.June, 15)}
		svc.Create(ctx, 1, e)
		return e.ID
	}

	t.Run("Settles in full with the supplied payment date", func(t *testing.T) {
		repo, logRepo, bus, svc := newExpenseFixture(now)
		id := seed(svc)

		var published []events.Event
		bus.Subscribe(events.ExpensePaid, func(ev events.Event) { published = append(published, ev) })

		paidOn := day(2024, time.June, 12)
		e, err := svc.MarkPaid(ctx, 1, id, &paidOn)
		require.NoError(t, err)

		assert.Equal(t, domain.ExpenseStatusPaid, e.Status)
		require.NotNil(t, e.PaymentDate)
		assert.True(t, e.PaymentDate.Equal(paidOn))

		stored, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.ExpenseStatusPaid, stored.Status)

		assert.Len(t, published, 1)
		assert.Equal(t, "EXPENSE_PAID", logRepo.entries[len(logRepo.entries)-1].Action)
	})

	t.Run("Payment date defaults to now", func(t *testing.T) {
		_, _, _, svc := newExpenseFixture(now)
		id := seed(svc)

		e, err := svc.MarkPaid(ctx, 1, id, nil)
		require.NoError(t, err)
		require.NotNil(t, e.PaymentDate)
		assert.True(t, e.PaymentDate.Equal(now))
	})

	t.Run("Settling twice is rejected", func(t *testing.T) {
		_, _, _, svc := newExpenseFixture(now)
		id := seed(svc)

		_, err := svc.MarkPaid(ctx, 1, id, nil)
		require.NoError(t, err)

		var validation *domain.ValidationError
		_, err = svc.MarkPaid(ctx, 1, id, nil)
		require.True(t, errors.As(err, &validation))
	})
}

func TestExpenseList(t *testing.T) {
	now := day(2024, time.June, 1)
	ctx := context.Background()

	_, _, _, svc := newExpenseFixture(now)
	require.NoError(t, svc.Create(ctx, 1, &domain.Expense{Title: "Loyer", Category: "loyer", Amount: dec("4500"), DueDate: day(2024, time.June, 5)}))
	require.NoError(t, svc.Create(ctx, 1, &domain.Expense{Title: "Eau", Category: "utilities", Amount: dec("300"), DueDate: day(2024, time.June, 20)}))
	require.NoError(t, svc.Create(ctx, 1, &domain.Expense{Title: "Loyer juillet", Category: "loyer", Amount: dec("4500"), DueDate: day(2024, time.July, 5)}))

	t.Run("By category", func(t *testing.T) {
		out, err := svc.List(ctx, ExpenseFilter{Category: "loyer"})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("By month", func(t *testing.T) {
		out, err := svc.List(ctx, ExpenseFilter{Month: time.June})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("By status", func(t *testing.T) {
		out, err := svc.List(ctx, ExpenseFilter{Status: domain.ExpenseStatusPending})
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("No filter returns everything", func(t *testing.T) {
		out, err := svc.List(ctx, ExpenseFilter{})
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})
}
