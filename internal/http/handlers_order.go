package http

import (
	"log/slog"
	"net/http"
	"time"

	"hobu/internal/core"
)

// orderDraft is the wire shape of a submitted order. The amount arrives as
// a decimal string ("12.34" or "12,34") and is parsed to cents; created_at
// defaults to now when omitted.
type orderDraft struct {
	ID         int64  `json:"id,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
	CategoryID int64  `json:"category_id"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
	Type       string `json:"type"`
}

func (d orderDraft) toOrder() (core.Order, error) {
	cents, err := core.ParseDecimalToCents(d.Amount)
	if err != nil {
		return core.Order{}, err
	}
	createdAt := d.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}
	o := core.Order{
		ID:         d.ID,
		CreatedAt:  createdAt,
		CategoryID: d.CategoryID,
		Amount:     core.Money{Cents: cents},
		Note:       d.Note,
		Type:       core.OrderType(d.Type),
	}
	if err := o.Validate(); err != nil {
		return core.Order{}, err
	}
	return o, nil
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listOrders(w, r)
	case http.MethodPost:
		s.createOrder(w, r)
	case http.MethodPut:
		s.updateOrder(w, r)
	case http.MethodDelete:
		s.deleteOrder(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := s.orders.QueryOrders(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, "query orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orderViews(orders))
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var draft orderDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.ID != 0 {
		writeError(w, http.StatusBadRequest, "create must not carry an id")
		return
	}

	order, err := draft.toOrder()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.orders.AddOrder(r.Context(), order)
	if err != nil {
		writeStoreError(w, r, "create order", err)
		return
	}
	s.reportCache.Clear()

	slog.InfoContext(r.Context(), "Order created",
		"order_id", id,
		"category_id", order.CategoryID,
		"amount_cents", order.Amount.Cents,
		"order_type", string(order.Type))
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var draft orderDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.ID <= 0 {
		writeError(w, http.StatusBadRequest, "update requires an id")
		return
	}

	order, err := draft.toOrder()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.orders.UpdateOrder(r.Context(), order); err != nil {
		writeStoreError(w, r, "update order", err)
		return
	}
	s.reportCache.Clear()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.orders.DeleteOrder(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete order", err)
		return
	}
	s.reportCache.Clear()
	writeJSON(w, http.StatusNoContent, nil)
}
