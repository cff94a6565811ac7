package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/events"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type expenseService struct {
	repo    repository.ExpenseRepository
	logRepo repository.FinancialLogRepository
	bus     *events.Bus
	clk     clock.Clock
	locks   *entityLocks
}

func NewExpenseService(
	repo repository.ExpenseRepository,
	logRepo repository.FinancialLogRepository,
	bus *events.Bus,
	clk clock.Clock,
) ExpenseService {
	return &expenseService{
		repo:    repo,
		logRepo: logRepo,
		bus:     bus,
		clk:     clk,
		locks:   newEntityLocks(),
	}
}

func (s *expenseService) Create(ctx context.Context, userID int32, e *domain.Expense) error {
	if e.Title == "" {
		return &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	if !e.Amount.IsPositive() {
		return &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	e.Amount = domain.Money(e.Amount)
	if e.Status == "" {
		e.Status = domain.ExpenseStatusPending
	}
	e.CreatedAt = s.clk.Now()
	if e.Status == domain.ExpenseStatusPaid && e.PaymentDate == nil {
		now := s.clk.Now()
		e.PaymentDate = &now
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}

	s.audit(ctx, userID, "EXPENSE_CREATE",
		fmt.Sprintf("Création d'une charge: %s (%s DH)", e.Title, e.Amount))
	return nil
}

func (s *expenseService) Get(ctx context.Context, id int32) (*domain.Expense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *expenseService) List(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := expenses[:0]
	for _, e := range expenses {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Month != 0 && e.DueDate.Month() != filter.Month {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// MarkPaid settles an expense in full. Expenses have no partial state: the
// transition is en_attente to payé, once.
func (s *expenseService) MarkPaid(ctx context.Context, userID, expenseID int32, paymentDate *time.Time) (*domain.Expense, error) {
	lock := s.locks.get(expenseID)
	lock.Lock()
	defer lock.Unlock()

	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e.Status == domain.ExpenseStatusPaid {
		return nil, &domain.ValidationError{Field: "status", Reason: "expense is already settled"}
	}

	when := s.clk.Now()
	if paymentDate != nil {
		when = *paymentDate
	}
	e.Status = domain.ExpenseStatusPaid
	e.PaymentDate = &when

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "EXPENSE_PAID",
		fmt.Sprintf("Charge payée: %s (%s DH)", e.Title, e.Amount))
	s.bus.Publish(events.ExpensePaid, e)
	return e, nil
}

func (s *expenseService) audit(ctx context.Context, userID int32, action, description string) {
	entry := &domain.FinancialLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		CreatedAt:   s.clk.Now(),
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		logger.Error("Failed to append financial log", "action", action, "error", err)
	}
}
