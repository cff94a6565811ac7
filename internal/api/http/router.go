package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every engine endpoint under /api/v1.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/calendar", h.GetFleetCalendar).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/events", h.GetVehicleEvents).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/availability", h.GetVehicleAvailability).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/quote", h.GetRentalQuote).Methods(http.MethodGet)

	api.HandleFunc("/financial/stats", h.GetFinancialStats).Methods(http.MethodGet)
	api.HandleFunc("/financial/analytics", h.GetAnalytics).Methods(http.MethodGet)

	api.HandleFunc("/installments", h.CreateInstallment).Methods(http.MethodPost)
	api.HandleFunc("/installments", h.ListInstallments).Methods(http.MethodGet)
	api.HandleFunc("/installments/{id}", h.GetInstallment).Methods(http.MethodGet)
	api.HandleFunc("/installments/{id}/payments", h.RecordInstallmentPayment).Methods(http.MethodPost)
	api.HandleFunc("/installments/{id}/payments", h.GetInstallmentPayments).Methods(http.MethodGet)

	api.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}/pay", h.MarkExpensePaid).Methods(http.MethodPatch)

	api.HandleFunc("/claims", h.ListClaims).Methods(http.MethodGet)
	api.HandleFunc("/claims/{id}/reimbursements", h.RecordReimbursement).Methods(http.MethodPost)
	api.HandleFunc("/claims/{id}/receipts", h.GetClaimReceipts).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods(http.MethodPost)

	return router
}
