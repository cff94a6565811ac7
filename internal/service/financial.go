package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository"
)

const revenueSeriesMonths = 6

type financialService struct {
	rentalRepo      repository.RentalRepository
	rentalPayRepo   repository.RentalPaymentRepository
	expenseRepo     repository.ExpenseRepository
	incidentRepo    repository.IncidentRepository
	installmentRepo repository.InstallmentRepository
	vehicleRepo     repository.VehicleRepository
	clientRepo      repository.ClientRepository
	clk             clock.Clock
}

func NewFinancialService(
	rentalRepo repository.RentalRepository,
	rentalPayRepo repository.RentalPaymentRepository,
	expenseRepo repository.ExpenseRepository,
	incidentRepo repository.IncidentRepository,
	installmentRepo repository.InstallmentRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	clk clock.Clock,
) FinancialService {
	return &financialService{
		rentalRepo:      rentalRepo,
		rentalPayRepo:   rentalPayRepo,
		expenseRepo:     expenseRepo,
		incidentRepo:    incidentRepo,
		installmentRepo: installmentRepo,
		vehicleRepo:     vehicleRepo,
		clientRepo:      clientRepo,
		clk:             clk,
	}
}

// GetStats builds the dashboard rollup for the current calendar month. Every
// figure is recomputed from payment records and ledgers on each call.
func (s *financialService) GetStats(ctx context.Context) (*domain.FinancialStats, error) {
	logger.EnterMethod("FinancialService", "GetStats")
	defer logger.ExitMethod("FinancialService", "GetStats")

	now := s.clk.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	revenue, err := s.rentalPayRepo.SumBetween(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	monthlyExpenses := decimal.Zero
	for _, e := range expenses {
		if e.Status != domain.ExpenseStatusPaid {
			continue
		}
		// Paid expenses count in the month they were settled; the due date is
		// the fallback for records predating the payment date column.
		when := e.DueDate
		if e.PaymentDate != nil {
			when = *e.PaymentDate
		}
		if when.Before(monthStart) || !when.Before(nextMonth) {
			continue
		}
		monthlyExpenses = monthlyExpenses.Add(e.Amount)
	}

	pendingClaims, err := s.incidentRepo.ListPendingClaims(ctx)
	if err != nil {
		return nil, err
	}
	pendingReimbursements := decimal.Zero
	for _, c := range pendingClaims {
		pendingReimbursements = pendingReimbursements.Add(c.RemainingReimbursement())
	}

	installments, err := s.installmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	remainingInstallments := decimal.Zero
	for _, inst := range installments {
		remainingInstallments = remainingInstallments.Add(inst.RemainingAmount())
	}

	return &domain.FinancialStats{
		MonthlyRevenue:             domain.Money(revenue),
		MonthlyExpenses:            domain.Money(monthlyExpenses),
		NetProfit:                  domain.Money(revenue.Sub(monthlyExpenses)),
		PendingReimbursements:      domain.Money(pendingReimbursements),
		TotalRemainingInstallments: domain.Money(remainingInstallments),
	}, nil
}

func (s *financialService) GetAnalytics(ctx context.Context) (*domain.AnalyticsStats, error) {
	logger.EnterMethod("FinancialService", "GetAnalytics")
	defer logger.ExitMethod("FinancialService", "GetAnalytics")

	totalRevenue, err := s.rentalPayRepo.SumAll(ctx)
	if err != nil {
		return nil, err
	}

	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, rt := range rentals {
		if rt.Status == domain.RentalStatusActive {
			active++
		}
	}

	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	utilization := 0.0
	if len(vehicles) > 0 {
		utilization = float64(active) / float64(len(vehicles)) * 100
	}

	series, err := s.revenueSeries(ctx)
	if err != nil {
		return nil, err
	}

	topClients, err := s.topClients(ctx, rentals)
	if err != nil {
		return nil, err
	}

	return &domain.AnalyticsStats{
		TotalRevenue:    domain.Money(totalRevenue),
		TotalRentals:    len(rentals),
		ActiveRentals:   active,
		UtilizationRate: utilization,
		MonthlyRevenue:  series,
		TopClients:      topClients,
		TopVehicles:     s.topVehicles(rentals, vehicles),
	}, nil
}

// revenueSeries returns the last six calendar months, oldest first, the
// current month included.
func (s *financialService) revenueSeries(ctx context.Context) ([]domain.MonthRevenue, error) {
	now := s.clk.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	series := make([]domain.MonthRevenue, 0, revenueSeriesMonths)
	for i := revenueSeriesMonths - 1; i >= 0; i-- {
		from := currentMonth.AddDate(0, -i, 0)
		to := from.AddDate(0, 1, 0)
		revenue, err := s.rentalPayRepo.SumBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		series = append(series, domain.MonthRevenue{
			Month:   from.Format("Jan"),
			Revenue: domain.Money(revenue),
		})
	}
	return series, nil
}

func (s *financialService) topClients(ctx context.Context, rentals []domain.Rental) ([]domain.ClientStats, error) {
	type tally struct {
		rentals int
		revenue decimal.Decimal
	}
	byClient := map[int32]*tally{}
	for _, rt := range rentals {
		if rt.Status == domain.RentalStatusCancelled {
			continue
		}
		t, ok := byClient[rt.ClientID]
		if !ok {
			t = &tally{revenue: decimal.Zero}
			byClient[rt.ClientID] = t
		}
		t.rentals++
		t.revenue = t.revenue.Add(rt.TotalPrice)
	}

	stats := make([]domain.ClientStats, 0, len(byClient))
	for clientID, t := range byClient {
		name := fmt.Sprintf("Client #%d", clientID)
		if c, err := s.clientRepo.GetByID(ctx, clientID); err == nil {
			name = c.FullName
		}
		stats = append(stats, domain.ClientStats{
			Name:    name,
			Rentals: t.rentals,
			Revenue: domain.Money(t.revenue),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue.GreaterThan(stats[j].Revenue)
	})
	if len(stats) > 5 {
		stats = stats[:5]
	}
	return stats, nil
}

func (s *financialService) topVehicles(rentals []domain.Rental, vehicles []domain.Vehicle) []domain.VehicleStats {
	counts := map[int32]int{}
	for _, rt := range rentals {
		if rt.Status == domain.RentalStatusCancelled {
			continue
		}
		counts[rt.VehicleID]++
	}

	names := make(map[int32]string, len(vehicles))
	for _, v := range vehicles {
		names[v.ID] = v.Name()
	}

	stats := make([]domain.VehicleStats, 0, len(counts))
	for vehicleID, n := range counts {
		name, ok := names[vehicleID]
		if !ok {
			name = fmt.Sprintf("Véhicule #%d", vehicleID)
		}
		stats = append(stats, domain.VehicleStats{Name: name, Rentals: n})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Rentals > stats[j].Rentals
	})
	if len(stats) > 5 {
		stats = stats[:5]
	}
	return stats
}
