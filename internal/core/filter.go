package core

import (
	"fmt"
	"time"
)

// Filter selects orders by an optional creation-date range and an optional
// set of category ids. A nil CreatedAt means no date bound; a nil or empty
// Categories slice means no category filtering (it never means "exclude all").
type Filter struct {
	CreatedAt  *DateRange `json:"created_at,omitempty"`
	Categories []int64    `json:"categories,omitempty"`
}

// DateRange is an inclusive [From, To] bound over Order.CreatedAt. Either
// side may be empty, leaving the range open on that side. Bounds accepts
// RFC 3339 timestamps and plain YYYY-MM-DD dates.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// TimeBounds is a resolved date range in epoch milliseconds. HasFrom/HasTo
// report which sides are bounded.
type TimeBounds struct {
	From    int64
	To      int64
	HasFrom bool
	HasTo   bool
}

// Bounds resolves the textual range into epoch-millisecond bounds for the
// created_at index scan. Unparseable bounds are reported to the caller; the
// range is never silently widened or narrowed.
func (r DateRange) Bounds() (TimeBounds, error) {
	var b TimeBounds
	if r.From != "" {
		t, err := parseInstant(r.From)
		if err != nil {
			return TimeBounds{}, fmt.Errorf("parse from bound: %w", err)
		}
		b.From = t.UnixMilli()
		b.HasFrom = true
	}
	if r.To != "" {
		t, err := parseInstant(r.To)
		if err != nil {
			return TimeBounds{}, fmt.Errorf("parse to bound: %w", err)
		}
		b.To = t.UnixMilli()
		b.HasTo = true
	}
	return b, nil
}

// Contains reports whether the given epoch-millisecond timestamp falls
// inside the bounds. Both ends are inclusive; a from after to yields an
// empty range rather than an error.
func (b TimeBounds) Contains(ms int64) bool {
	if b.HasFrom && ms < b.From {
		return false
	}
	if b.HasTo && ms > b.To {
		return false
	}
	return true
}

// MatchesCategory is the in-memory predicate applied while iterating a
// range cursor. It is kept separate from the bound computation so each can
// be tested on its own.
func (f Filter) MatchesCategory(o Order) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, id := range f.Categories {
		if o.CategoryID == id {
			return true
		}
	}
	return false
}

func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return t, nil
}
