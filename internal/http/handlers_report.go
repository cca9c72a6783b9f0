package http

import (
	"net/http"

	"hobu/internal/core"
)

// handleReport aggregates the filtered order list into chart-ready series.
// Results are cached per filter until the next write.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter, err := parseFilterQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := filterCacheKey(filter)
	if report, ok := s.reportCache.Get(key); ok {
		writeJSON(w, http.StatusOK, report)
		return
	}

	orders, err := s.orders.QueryOrders(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, "query orders", err)
		return
	}
	categories, err := s.categories.Categories(r.Context())
	if err != nil {
		writeStoreError(w, r, "list categories", err)
		return
	}

	report := core.BuildReport(orders, categories)
	s.reportCache.Set(key, report)
	writeJSON(w, http.StatusOK, report)
}
