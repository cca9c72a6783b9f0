// Request parsing helpers shared by the handlers: bounded JSON decoding,
// id extraction and the query-string to filter translation.

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"hobu/internal/core"
)

const maxBodyBytes = 1 << 20 // 1MB

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// parseID extracts a positive record id from the ?id= query parameter.
func parseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		return 0, fmt.Errorf("missing id parameter")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// parseFilterQuery translates from/to/categories query parameters into a
// filter. Empty parameters mean no filtering; date validity is checked here
// so the store never sees bounds that cannot be resolved.
func parseFilterQuery(r *http.Request) (core.Filter, error) {
	q := r.URL.Query()
	var filter core.Filter

	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if from != "" || to != "" {
		dr := core.DateRange{From: from, To: to}
		if _, err := dr.Bounds(); err != nil {
			return core.Filter{}, err
		}
		filter.CreatedAt = &dr
	}

	if raw := strings.TrimSpace(q.Get("categories")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return core.Filter{}, fmt.Errorf("invalid category id %q", part)
			}
			filter.Categories = append(filter.Categories, id)
		}
	}

	return filter, nil
}

// filterCacheKey is the canonical cache key for a filter. Category order is
// significant on purpose: the same set in a different order is a different
// (rare) key, never a wrong result.
func filterCacheKey(f core.Filter) string {
	var b strings.Builder
	if f.CreatedAt != nil {
		b.WriteString(f.CreatedAt.From)
		b.WriteString("..")
		b.WriteString(f.CreatedAt.To)
	}
	b.WriteString("|")
	for i, id := range f.Categories {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}
