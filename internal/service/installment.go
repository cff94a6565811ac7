package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/events"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

type installmentService struct {
	repo    repository.InstallmentRepository
	logRepo repository.FinancialLogRepository
	bus     *events.Bus
	clk     clock.Clock
	locks   *entityLocks
}

func NewInstallmentService(
	repo repository.InstallmentRepository,
	logRepo repository.FinancialLogRepository,
	bus *events.Bus,
	clk clock.Clock,
) InstallmentService {
	return &installmentService{
		repo:    repo,
		logRepo: logRepo,
		bus:     bus,
		clk:     clk,
		locks:   newEntityLocks(),
	}
}

func (s *installmentService) Create(ctx context.Context, userID int32, inst *domain.VehicleInstallment) error {
	if !inst.TotalAmount.IsPositive() {
		return &domain.ValidationError{Field: "total_amount", Reason: "must be positive"}
	}
	if !inst.MonthlyAmount.IsPositive() {
		return &domain.ValidationError{Field: "monthly_amount", Reason: "must be positive"}
	}
	if inst.LenderName == "" {
		return &domain.ValidationError{Field: "lender_name", Reason: "is required"}
	}

	inst.TotalAmount = domain.Money(inst.TotalAmount)
	inst.MonthlyAmount = domain.Money(inst.MonthlyAmount)
	inst.AmountPaid = decimal.Zero
	inst.Status = domain.InstallmentStatusActive
	inst.CreatedAt = s.clk.Now()

	if err := s.repo.Create(ctx, inst); err != nil {
		return err
	}

	s.audit(ctx, userID, "INSTALLMENT_CREATE",
		fmt.Sprintf("Création d'une traite de %s DH pour le véhicule #%d", inst.TotalAmount, inst.VehicleID))
	return nil
}

// RecordPayment appends a payment to the plan. The read-check-append-update
// sequence runs under a per-installment lock so concurrent payments on the
// same plan cannot both pass the overpayment check.
func (s *installmentService) RecordPayment(ctx context.Context, userID, installmentID int32, amount decimal.Decimal, method domain.PaymentMethod, note string) (*domain.PaymentRecord, error) {
	lock := s.locks.get(installmentID)
	lock.Lock()
	defer lock.Unlock()

	inst, err := s.repo.GetByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}

	ledger, err := inst.Ledger().Apply(amount)
	if err != nil {
		return nil, err
	}

	inst.AmountPaid = ledger.Paid
	if ledger.Settled() {
		inst.Status = domain.InstallmentStatusDone
	}

	now := s.clk.Now()
	payment := &domain.PaymentRecord{
		Amount:    domain.Money(amount),
		Date:      now,
		Method:    method,
		Note:      note,
		CreatedAt: now,
	}
	if err := s.repo.SavePayment(ctx, inst, payment); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "INSTALLMENT_PAYMENT",
		fmt.Sprintf("Paiement de %s DH pour la traite #%d", payment.Amount, installmentID))
	s.bus.Publish(events.InstallmentPaid, inst)
	return payment, nil
}

func (s *installmentService) Get(ctx context.Context, id int32) (*domain.VehicleInstallment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *installmentService) List(ctx context.Context) ([]domain.VehicleInstallment, error) {
	return s.repo.List(ctx)
}

func (s *installmentService) GetPaymentHistory(ctx context.Context, installmentID int32) ([]domain.PaymentRecord, error) {
	if _, err := s.repo.GetByID(ctx, installmentID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, installmentID)
}

// audit appends to the financial log. A failed audit write is logged, not
// surfaced: the payment already committed.
func (s *installmentService) audit(ctx context.Context, userID int32, action, description string) {
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
