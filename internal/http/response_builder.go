package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hobu/internal/core"
	"hobu/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps the store taxonomy onto HTTP statuses. Everything in
// it is a server-side failure; validation problems never reach here.
func writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "Store operation failed",
		"operation", op,
		"error", err)

	switch {
	case errors.Is(err, storage.ErrNotInitialized):
		writeError(w, http.StatusServiceUnavailable, "store not ready")
	case errors.Is(err, storage.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "storage error")
	}
}

// orderView decorates an order with a display amount for list responses.
type orderView struct {
	core.Order
	AmountDisplay string `json:"amount_display"`
}

func orderViews(orders []core.Order) []orderView {
	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = orderView{Order: o, AmountDisplay: core.FormatUAH(o.Amount)}
	}
	return views
}
