package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/logger"
)

// Deadline windows, in days ahead of (or behind) the sweep date.
const (
	installmentDueWindowDays = 5
	expenseDueWindowDays     = 3
	claimOverdueGraceDays    = 7
	maintenanceDueWindowDays = 2
	documentExpiryWindowDays = 15
)

// SweepResult summarizes one deadline sweep run.
type SweepResult struct {
	Notifications int
	Emails        int
	Failures      int
}

// dedupKey prevents duplicate alerts for the same recipient, rule and
// subject within a single sweep. Across sweeps nothing is remembered: an
// unresolved deadline is re-announced every day until someone acts on it.
type dedupKey struct {
	userID  int32
	rule    string
	subject int32
}

// RunDeadlineSweep is the cron entry point for the daily deadline sweep.
func (jr *JobRunner) RunDeadlineSweep() {
	jr.runWithRecovery("RunDeadlineSweep", func() {
		ctx := context.Background()
		result, err := jr.Sweep(ctx, jr.clk.Now())
		if err != nil {
			logger.Error("Deadline sweep failed", "error", err)
			return
		}
		logger.Info("Deadline sweep finished",
			"notifications", result.Notifications,
			"emails", result.Emails,
			"failures", result.Failures)
	})
}

// Sweep scans every deadline source as of the given date and fans alerts out
// to all admin users. Each rule failing individually does not abort the
// sweep; the failure is counted and the remaining rules still run.
func (jr *JobRunner) Sweep(ctx context.Context, asOf time.Time) (*SweepResult, error) {
	today := clock.Day(asOf)

	admins, err := jr.store.UserRepository.ListByRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) == 0 {
		logger.Warn("Deadline sweep has no admin recipients")
		return &SweepResult{}, nil
	}

	result := &SweepResult{}
	seen := map[dedupKey]bool{}

	jr.sweepInstallments(ctx, today, admins, seen, result)
	jr.sweepExpenses(ctx, today, admins, seen, result)
	jr.sweepClaims(ctx, today, admins, seen, result)
	jr.sweepMaintenances(ctx, today, admins, seen, result)
	jr.sweepVehicleDocuments(ctx, today, admins, seen, result)

	return result, nil
}

// sweepInstallments alerts on active financing plans whose next due date
// falls within the coming five days.
func (jr *JobRunner) sweepInstallments(ctx context.Context, today time.Time, admins []domain.User, seen map[dedupKey]bool, result *SweepResult) {
	installments, err := jr.store.InstallmentRepository.List(ctx)
	if err != nil {
		logger.Error("Failed to list installments for sweep", "error", err)
		result.Failures++
		return
	}

	horizon := today.AddDate(0, 0, installmentDueWindowDays)
	for _, inst := range installments {
		if inst.Status != domain.InstallmentStatusActive {
			continue
		}
		due := clock.Day(inst.NextDueDate)
		if due.Before(today) || due.After(horizon) {
			continue
		}
		message := fmt.Sprintf(
			"La traite de %s DH (%s) arrive à échéance le %s.",
			inst.MonthlyAmount, inst.LenderName, due.Format("02/01/2006"))
		jr.alertAdmins(ctx, admins, seen, "installment_due", inst.ID,
			"Échéance Traite", message, domain.NotificationCategoryPayment, result)
	}
}

// sweepExpenses alerts on unpaid charges due within the coming three days.
func (jr *JobRunner) sweepExpenses(ctx context.Context, today time.Time, admins []domain.User, seen map[dedupKey]bool, result *SweepResult) {
	expenses, err := jr.store.ExpenseRepository.List(ctx)
	if err != nil {
		logger.Error("Failed to list expenses for sweep", "error", err)
		result.Failures++
		return
	}

	horizon := today.AddDate(0, 0, expenseDueWindowDays)
	for _, e := range expenses {
		if e.Status != domain.ExpenseStatusPending {
			continue
		}
		due := clock.Day(e.DueDate)
		if due.Before(today) || due.After(horizon) {
			continue
		}
		message := fmt.Sprintf(
			"La charge \"%s\" de %s DH arrive à échéance le %s.",
			e.Title, e.Amount, due.Format("02/01/2006"))
		jr.alertAdmins(ctx, admins, seen, "expense_due", e.ID,
			"Échéance Charge", message, domain.NotificationCategoryPayment, result)
	}
}

// sweepClaims alerts on reimbursements more than seven days past their
// expected date with nothing received yet. A claim in partiel is being
// worked and does not re-alert.
func (jr *JobRunner) sweepClaims(ctx context.Context, today time.Time, admins []domain.User, seen map[dedupKey]bool, result *SweepResult) {
	claims, err := jr.store.IncidentRepository.ListPendingClaims(ctx)
	if err != nil {
		logger.Error("Failed to list pending claims for sweep", "error", err)
		result.Failures++
		return
	}

	for _, c := range claims {
		if c.PaymentStatus != domain.LedgerStatusOpen {
			continue
		}
		if c.ReimbursementExpectedDate == nil {
			continue
		}
		deadline := clock.Day(*c.ReimbursementExpectedDate).AddDate(0, 0, claimOverdueGraceDays)
		if !today.After(deadline) {
			continue
		}
		message := fmt.Sprintf(
			"Le remboursement du sinistre #%d est en retard: %s DH restants, attendu le %s.",
			c.ID, c.RemainingReimbursement(),
			clock.Day(*c.ReimbursementExpectedDate).Format("02/01/2006"))
		jr.alertAdmins(ctx, admins, seen, "claim_overdue", c.ID,
			"Retard Remboursement", message, domain.NotificationCategoryPayment, result)
	}
}

// sweepMaintenances alerts on vehicles whose next scheduled maintenance is
// less than two days out.
func (jr *JobRunner) sweepMaintenances(ctx context.Context, today time.Time, admins []domain.User, seen map[dedupKey]bool, result *SweepResult) {
	maintenances, err := jr.store.MaintenanceRepository.ListInProgress(ctx)
	if err != nil {
		logger.Error("Failed to list maintenances for sweep", "error", err)
		result.Failures++
		return
	}

	horizon := today.AddDate(0, 0, maintenanceDueWindowDays)
	for _, m := range maintenances {
		if m.NextDueDate.IsZero() {
			continue
		}
		due := clock.Day(m.NextDueDate)
		if !due.Before(horizon) {
			continue
		}
		message := fmt.Sprintf(
			"Maintenance (%s) prévue le %s pour le véhicule #%d.",
			m.Type, due.Format("02/01/2006"), m.VehicleID)
		jr.alertAdmins(ctx, admins, seen, "maintenance_due", m.ID,
			"Maintenance Prévue", message, domain.NotificationCategoryMaintenance, result)
	}
}

// sweepVehicleDocuments alerts on insurance, registration and inspection
// papers expiring within fifteen days. There is no lower bound: a paper
// already expired keeps alerting daily until it is renewed. Each document
// kind is its own rule so two expiring papers on the same vehicle both
// alert.
func (jr *JobRunner) sweepVehicleDocuments(ctx context.Context, today time.Time, admins []domain.User, seen map[dedupKey]bool, result *SweepResult) {
	vehicles, err := jr.store.VehicleRepository.List(ctx)
	if err != nil {
		logger.Error("Failed to list vehicles for sweep", "error", err)
		result.Failures++
		return
	}

	horizon := today.AddDate(0, 0, documentExpiryWindowDays)
	documents := []struct {
		rule   string
		title  string
		label  string
		expiry func(*domain.Vehicle) *time.Time
	}{
		{"insurance_expiry", "Expiration Assurance", "L'assurance",
			func(v *domain.Vehicle) *time.Time { return v.InsuranceExpiry }},
		{"registration_expiry", "Expiration Carte Grise", "La carte grise",
			func(v *domain.Vehicle) *time.Time { return v.RegistrationExpiry }},
		{"inspection_expiry", "Expiration Contrôle Technique", "Le contrôle technique",
			func(v *domain.Vehicle) *time.Time { return v.InspectionExpiry }},
	}

	for i := range vehicles {
		v := &vehicles[i]
		for _, doc := range documents {
			expiry := doc.expiry(v)
			if expiry == nil {
				continue
			}
			day := clock.Day(*expiry)
			if !day.Before(horizon) {
				continue
			}
			message := fmt.Sprintf(
				"%s du véhicule %s (%s) expire le %s.",
				doc.label, v.Name(), v.LicensePlate, day.Format("02/01/2006"))
			jr.alertAdmins(ctx, admins, seen, doc.rule, v.ID,
				doc.title, message, domain.NotificationCategoryDocument, result)
		}
	}
}

// alertAdmins writes one notification per admin and mails the alert. A mail
// failure is counted but never blocks the stored notification.
func (jr *JobRunner) alertAdmins(ctx context.Context, admins []domain.User, seen map[dedupKey]bool, rule string, subjectID int32, title, message string, category domain.NotificationCategory, result *SweepResult) {
	for _, admin := range admins {
		key := dedupKey{userID: admin.ID, rule: rule, subject: subjectID}
		if seen[key] {
			continue
		}
		seen[key] = true

		if _, err := jr.services.Notification.Notify(ctx, admin.ID, title, message, category); err != nil {
			logger.Error("Failed to store deadline notification",
				"rule", rule, "subject_id", subjectID, "user_id", admin.ID, "error", err)
			result.Failures++
			continue
		}
		result.Notifications++

		if err := jr.services.Email.SendDeadlineAlert(ctx, admin.Email, admin.Name, title, message); err != nil {
			logger.Error("Failed to mail deadline alert",
				"rule", rule, "subject_id", subjectID, "user_id", admin.ID, "error", err)
			result.Failures++
			continue
		}
		result.Emails++
	}
}
