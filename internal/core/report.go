package core

import "sort"

// DeletedCategoryLabel is used for orders whose category no longer exists.
// Orders are never cascade-deleted with their category, so reports must
// still account for them under this sentinel.
const DeletedCategoryLabel = "DELETED"

type (
	// TypedCategoryTotal is the running sum of amounts for one
	// (category, order type) pair.
	TypedCategoryTotal struct {
		CategoryID int64     `json:"category_id"`
		Type       OrderType `json:"type"`
		Label      string    `json:"label"`
		Color      string    `json:"color,omitempty"`
		Total      Money     `json:"total"`
	}

	// CategoryNet is the signed per-category total: debit orders add,
	// credit orders subtract.
	CategoryNet struct {
		CategoryID int64  `json:"category_id"`
		Label      string `json:"label"`
		Color      string `json:"color,omitempty"`
		NetCents   int64  `json:"net_cents"`
	}

	// Summary holds the three scalar totals. Net is DebitTotal minus
	// CreditTotal in cents and may be negative.
	Summary struct {
		DebitTotal  Money `json:"debit_total"`
		CreditTotal Money `json:"credit_total"`
		NetCents    int64 `json:"net_cents"`
	}

	// Report is the display-ready aggregation over an order list.
	Report struct {
		ByCategoryType []TypedCategoryTotal `json:"by_category_type"`
		ByCategory     []CategoryNet        `json:"by_category"`
		Summary        Summary              `json:"summary"`
	}
)

type typeKey struct {
	categoryID int64
	orderType  OrderType
}

// BuildReport reduces orders into grouped totals and summary scalars. It is
// a pure function of its inputs: no store access, no side effects, callable
// concurrently. Categories only supply labels and colors; an order whose
// category is missing lands under the DELETED sentinel instead of failing.
//
// ByCategoryType and ByCategory preserve first-encounter order; ByCategory
// is then stably re-sorted by descending absolute net so "top categories"
// displays can consume it directly.
func BuildReport(orders []Order, categories []Category) Report {
	labels := make(map[int64]Category, len(categories))
	for _, c := range categories {
		labels[c.ID] = c
	}

	byType := make(map[typeKey]int)
	byCategory := make(map[int64]int)
	var report Report

	for _, o := range orders {
		label := DeletedCategoryLabel
		color := ""
		if c, ok := labels[o.CategoryID]; ok {
			label = c.Name
			color = c.Color
		}

		tk := typeKey{categoryID: o.CategoryID, orderType: o.Type}
		if i, ok := byType[tk]; ok {
			report.ByCategoryType[i].Total.Cents += o.Amount.Cents
		} else {
			byType[tk] = len(report.ByCategoryType)
			report.ByCategoryType = append(report.ByCategoryType, TypedCategoryTotal{
				CategoryID: o.CategoryID,
				Type:       o.Type,
				Label:      label,
				Color:      color,
				Total:      o.Amount,
			})
		}

		signed := o.Amount.Cents
		if o.Type == Credit {
			signed = -signed
		}
		if i, ok := byCategory[o.CategoryID]; ok {
			report.ByCategory[i].NetCents += signed
		} else {
			byCategory[o.CategoryID] = len(report.ByCategory)
			report.ByCategory = append(report.ByCategory, CategoryNet{
				CategoryID: o.CategoryID,
				Label:      label,
				Color:      color,
				NetCents:   signed,
			})
		}

		switch o.Type {
		case Debit:
			report.Summary.DebitTotal.Cents += o.Amount.Cents
		case Credit:
			report.Summary.CreditTotal.Cents += o.Amount.Cents
		}
	}

	report.Summary.NetCents = report.Summary.DebitTotal.Cents - report.Summary.CreditTotal.Cents

	sort.SliceStable(report.ByCategory, func(i, j int) bool {
		return abs(report.ByCategory[i].NetCents) > abs(report.ByCategory[j].NetCents)
	})

	return report
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
