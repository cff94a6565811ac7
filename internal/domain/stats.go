package domain

import "github.com/shopspring/decimal"

// FinancialStats is the dashboard rollup for the current calendar month.
// Every figure is recomputed on demand from the ledgers and payment records;
// nothing here is cached, so the numbers cannot drift.
type FinancialStats struct {
	MonthlyRevenue             decimal.Decimal `json:"monthly_revenue"`
	MonthlyExpenses            decimal.Decimal `json:"monthly_expenses"`
	NetProfit                  decimal.Decimal `json:"net_profit"`
	PendingReimbursements      decimal.Decimal `json:"pending_reimbursements"`
	TotalRemainingInstallments decimal.Decimal `json:"total_remaining_installments"`
}

// MonthRevenue is one point of the six-month revenue series.
type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ClientStats ranks a client by rental revenue.
type ClientStats struct {
	Name    string          `json:"name"`
	Rentals int             `json:"rentals"`
	Revenue decimal.Decimal `json:"revenue"`
}

// VehicleStats ranks a vehicle by rental count.
type VehicleStats struct {
	Name    string `json:"name"`
	Rentals int    `json:"rentals"`
}

// AnalyticsStats is the long-range analytics rollup.
type AnalyticsStats struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalRentals    int             `json:"total_rentals"`
	ActiveRentals   int             `json:"active_rentals"`
	UtilizationRate float64         `json:"utilization_rate"`
	MonthlyRevenue  []MonthRevenue  `json:"monthly_revenue"`
	TopClients      []ClientStats   `json:"top_clients"`
	TopVehicles     []VehicleStats  `json:"top_vehicles"`
}
