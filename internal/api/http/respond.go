package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AminePrince/bmsbackend/internal/domain"
	"github.com/AminePrince/bmsbackend/internal/logger"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Validation
// and overpayment reject with 400/422, unknown ids with 404, transient store
// failures with 503 so clients know a retry is safe.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation  *domain.ValidationError
		overpayment *domain.OverpaymentError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Error()})
	case errors.As(err, &overpayment):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": overpayment.Error()})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case domain.IsRetryable(err):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "temporary storage failure, retry later"})
	default:
		logger.Error("Unhandled request error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
