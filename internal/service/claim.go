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

type claimService struct {
	incidentRepo repository.IncidentRepository
	logRepo      repository.FinancialLogRepository
	bus          *events.Bus
	clk          clock.Clock
	locks        *entityLocks
}

func NewClaimService(
	incidentRepo repository.IncidentRepository,
	logRepo repository.FinancialLogRepository,
	bus *events.Bus,
	clk clock.Clock,
) ClaimService {
	return &claimService{
		incidentRepo: incidentRepo,
		logRepo:      logRepo,
		bus:          bus,
		clk:          clk,
		locks:        newEntityLocks(),
	}
}

func (s *claimService) ListClaims(ctx context.Context) ([]domain.Incident, error) {
	return s.incidentRepo.ListClaims(ctx)
}

// RecordReimbursement appends a received amount against the claim's
// expected reimbursement. The payment status is rederived from the balance,
// never set by the caller: en_attente while nothing is received, partiel
// once partially covered, payé at exactly zero remaining.
func (s *claimService) RecordReimbursement(ctx context.Context, userID, incidentID int32, amount decimal.Decimal, method domain.PaymentMethod, note string) (*domain.PaymentRecord, error) {
	lock := s.locks.get(incidentID)
	lock.Lock()
	defer lock.Unlock()

	incident, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if incident.Type != domain.IncidentTypeClaim {
		return nil, &domain.ValidationError{Field: "type", Reason: "incident is not a sinistre"}
	}

	ledger, err := incident.ClaimLedger().Apply(amount)
	if err != nil {
		return nil, err
	}

	incident.ReimbursementReceived = ledger.Paid
	incident.PaymentStatus = ledger.Status()

	now := s.clk.Now()
	receipt := &domain.PaymentRecord{
		Amount:    domain.Money(amount),
		Date:      now,
		Method:    method,
		Note:      note,
		CreatedAt: now,
	}
	if err := s.incidentRepo.SaveReimbursement(ctx, incident, receipt); err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "CLAIM_REIMBURSEMENT",
		fmt.Sprintf("Remboursement de %s DH pour le sinistre #%d", receipt.Amount, incidentID))
	s.bus.Publish(events.ClaimUpdated, incident)
	return receipt, nil
}

func (s *claimService) GetReceipts(ctx context.Context, incidentID int32) ([]domain.PaymentRecord, error) {
	if _, err := s.incidentRepo.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.incidentRepo.ListReceipts(ctx, incidentID)
}

func (s *claimService) audit(ctx context.Context, userID int32, action, description string) {
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
