package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/service"
)

// Handlers exposes the engine over HTTP for the back-office frontend.
type Handlers struct {
	availability service.AvailabilityService
	installments service.InstallmentService
	expenses     service.ExpenseService
	claims       service.ClaimService
	financial    service.FinancialService
	notification service.NotificationService
	clk          clock.Clock
}

func NewHandlers(
	availability service.AvailabilityService,
	installments service.InstallmentService,
	expenses service.ExpenseService,
	claims service.ClaimService,
	financial service.FinancialService,
	notification service.NotificationService,
	clk clock.Clock,
) *Handlers {
	return &Handlers{
		availability: availability,
		installments: installments,
		expenses:     expenses,
		claims:       claims,
		financial:    financial,
		notification: notification,
		clk:          clk,
	}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return int32(id), nil
}

func dateRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "start", Reason: "expected YYYY-MM-DD"}
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "end", Reason: "expected YYYY-MM-DD"}
	}
	return start, end, nil
}

// GetFleetCalendar serves the calendar page: every vehicle with its
// occupancy events in the requested range and its next availability.
func (h *Handlers) GetFleetCalendar(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	calendar, err := h.availability.GetFleetCalendar(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	rows := make([]vehicleCalendarDTO, 0, len(calendar))
	for _, row := range calendar {
		rows = append(rows, vehicleCalendarDTO{
			CarID:             row.Vehicle.ID,
			CarName:           row.Vehicle.Name(),
			LicensePlate:      row.Vehicle.LicensePlate,
			Events:            renderEvents(row.Events),
			NextAvailableDate: renderAvailability(row.NextAvailable),
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handlers) GetVehicleEvents(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	events, err := h.availability.GetEvents(r.Context(), vehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderEvents(events))
}

func (h *Handlers) GetVehicleAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	asOf := h.clk.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err = parseDate(raw)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "as_of", Reason: "expected YYYY-MM-DD"})
			return
		}
	}

	next, err := h.availability.NextAvailableDate(r.Context(), vehicleID, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	today, err := h.availability.IsAvailableToday(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityDTO{
		VehicleID:         vehicleID,
		NextAvailableDate: renderAvailability(next),
		AvailableToday:    today,
	})
}

func (h *Handlers) GetRentalQuote(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	quote, err := h.availability.GetRentalQuote(r.Context(), vehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handlers) GetFinancialStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.financial.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.financial.GetAnalytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	var req createInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	nextDue, err := parseDate(req.NextDueDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "next_due_date", Reason: "expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "end_date", Reason: "expected YYYY-MM-DD"})
		return
	}

	inst := &domain.VehicleInstallment{
		VehicleID:     req.VehicleID,
		TotalAmount:   req.TotalAmount,
		MonthlyAmount: req.MonthlyAmount,
		NextDueDate:   nextDue,
		EndDate:       endDate,
		LenderName:    req.LenderName,
		Notes:         req.Notes,
	}
	if err := h.installments.Create(r.Context(), req.UserID, inst); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (h *Handlers) ListInstallments(w http.ResponseWriter, r *http.Request) {
	installments, err := h.installments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, installments)
}

func (h *Handlers) GetInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	inst, err := h.installments.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *Handlers) RecordInstallmentPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	payment, err := h.installments.RecordPayment(r.Context(), req.UserID, id, req.Amount, domain.PaymentMethod(req.Method), req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handlers) GetInstallmentPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payments, err := h.installments.GetPaymentHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "due_date", Reason: "expected YYYY-MM-DD"})
		return
	}

	expense := &domain.Expense{
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		DueDate:  dueDate,
		Note:     req.Note,
	}
	if err := h.expenses.Create(r.Context(), req.UserID, expense); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := service.ExpenseFilter{
		Category: r.URL.Query().Get("category"),
		Status:   domain.ExpenseStatus(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			writeError(w, &domain.ValidationError{Field: "month", Reason: "expected 1-12"})
			return
		}
		filter.Month = time.Month(m)
	}

	expenses, err := h.expenses.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handlers) MarkExpensePaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req markExpensePaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	var paymentDate *time.Time
	if req.PaymentDate != "" {
		parsed, err := parseDate(req.PaymentDate)
		if err != nil {
			writeError(w, &domain.ValidationError{Field: "payment_date", Reason: "expected YYYY-MM-DD"})
			return
		}
		paymentDate = &parsed
	}

	expense, err := h.expenses.MarkPaid(r.Context(), req.UserID, id, paymentDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *Handlers) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claims.ListClaims(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (h *Handlers) RecordReimbursement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	receipt, err := h.claims.RecordReimbursement(r.Context(), req.UserID, id, req.Amount, domain.PaymentMethod(req.Method), req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handlers) GetClaimReceipts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	receipts, err := h.claims.GetReceipts(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipts)
}

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 32)
	if err != nil || userID <= 0 {
		writeError(w, &domain.ValidationError{Field: "user_id", Reason: "must be a positive integer"})
		return
	}
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)

	notes, total, err := h.notification.List(r.Context(), int32(userID), int32(page), int32(pageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationListDTO{Notifications: notes, Total: total})
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	if err := h.notification.MarkAsRead(r.Context(), req.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
