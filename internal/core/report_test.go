package core

import (
	"testing"
)

var reportCategories = []Category{
	{ID: 1, Name: "Food", Color: "#ff0000"},
	{ID: 2, Name: "Salary", Color: "#00ff00"},
}

func TestBuildReportSummary(t *testing.T) {
	const t0 = int64(1700000000000)
	orders := []Order{
		{ID: 1, CreatedAt: t0, CategoryID: 1, Amount: Money{Cents: 100}, Type: Credit},
		{ID: 2, CreatedAt: t0, CategoryID: 2, Amount: Money{Cents: 500}, Type: Debit},
	}

	r := BuildReport(orders, reportCategories)

	if r.Summary.DebitTotal.Cents != 500 {
		t.Fatalf("debit total = %d, want 500", r.Summary.DebitTotal.Cents)
	}
	if r.Summary.CreditTotal.Cents != 100 {
		t.Fatalf("credit total = %d, want 100", r.Summary.CreditTotal.Cents)
	}
	if r.Summary.NetCents != 400 {
		t.Fatalf("net = %d, want 400", r.Summary.NetCents)
	}

	if len(r.ByCategoryType) != 2 {
		t.Fatalf("expected 2 typed groups, got %d", len(r.ByCategoryType))
	}
	food := r.ByCategoryType[0]
	if food.CategoryID != 1 || food.Type != Credit || food.Total.Cents != 100 || food.Label != "Food" || food.Color != "#ff0000" {
		t.Fatalf("unexpected food group: %+v", food)
	}
	salary := r.ByCategoryType[1]
	if salary.CategoryID != 2 || salary.Type != Debit || salary.Total.Cents != 500 || salary.Label != "Salary" {
		t.Fatalf("unexpected salary group: %+v", salary)
	}
}

func TestBuildReportAccumulates(t *testing.T) {
	orders := []Order{
		{CreatedAt: 1, CategoryID: 1, Amount: Money{Cents: 100}, Type: Credit},
		{CreatedAt: 2, CategoryID: 1, Amount: Money{Cents: 250}, Type: Credit},
		{CreatedAt: 3, CategoryID: 1, Amount: Money{Cents: 40}, Type: Debit},
	}

	r := BuildReport(orders, reportCategories)

	if len(r.ByCategoryType) != 2 {
		t.Fatalf("expected credit and debit groups for the same category, got %d", len(r.ByCategoryType))
	}
	if r.ByCategoryType[0].Total.Cents != 350 {
		t.Fatalf("credit group = %d, want 350", r.ByCategoryType[0].Total.Cents)
	}

	// Sum over typed groups equals debit + credit totals.
	var sum int64
	for _, g := range r.ByCategoryType {
		sum += g.Total.Cents
	}
	if sum != r.Summary.DebitTotal.Cents+r.Summary.CreditTotal.Cents {
		t.Fatalf("typed groups sum to %d, totals give %d", sum, r.Summary.DebitTotal.Cents+r.Summary.CreditTotal.Cents)
	}

	// Debit adds, credit subtracts in the per-category net.
	if len(r.ByCategory) != 1 || r.ByCategory[0].NetCents != -310 {
		t.Fatalf("per-category net = %+v, want single entry of -310", r.ByCategory)
	}
}

func TestBuildReportDeletedCategory(t *testing.T) {
	orders := []Order{
		{CreatedAt: 1, CategoryID: 99, Amount: Money{Cents: 100}, Type: Credit},
	}

	r := BuildReport(orders, reportCategories)

	if len(r.ByCategoryType) != 1 {
		t.Fatalf("expected one group, got %d", len(r.ByCategoryType))
	}
	g := r.ByCategoryType[0]
	if g.Label != DeletedCategoryLabel || g.Color != "" || g.Total.Cents != 100 {
		t.Fatalf("unexpected group for missing category: %+v", g)
	}

	// Same input against no categories at all: everything is the sentinel.
	r = BuildReport(orders, nil)
	if r.ByCategoryType[0].Label != DeletedCategoryLabel {
		t.Fatalf("nil categories must degrade to sentinel labels")
	}
}

func TestBuildReportTopCategoryOrdering(t *testing.T) {
	orders := []Order{
		{CreatedAt: 1, CategoryID: 1, Amount: Money{Cents: 100}, Type: Credit},
		{CreatedAt: 2, CategoryID: 2, Amount: Money{Cents: 900}, Type: Debit},
		{CreatedAt: 3, CategoryID: 3, Amount: Money{Cents: 100}, Type: Debit},
	}

	r := BuildReport(orders, reportCategories)

	if len(r.ByCategory) != 3 {
		t.Fatalf("expected 3 category nets, got %d", len(r.ByCategory))
	}
	if r.ByCategory[0].CategoryID != 2 {
		t.Fatalf("largest magnitude must sort first, got id %d", r.ByCategory[0].CategoryID)
	}
	// Categories 1 (-100) and 3 (+100) tie on magnitude; encounter order wins.
	if r.ByCategory[1].CategoryID != 1 || r.ByCategory[2].CategoryID != 3 {
		t.Fatalf("ties must keep encounter order, got %d then %d", r.ByCategory[1].CategoryID, r.ByCategory[2].CategoryID)
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	r := BuildReport(nil, nil)
	if len(r.ByCategoryType) != 0 || len(r.ByCategory) != 0 {
		t.Fatalf("empty input must produce empty groups: %+v", r)
	}
	if r.Summary.DebitTotal.Cents != 0 || r.Summary.CreditTotal.Cents != 0 || r.Summary.NetCents != 0 {
		t.Fatalf("empty input must produce zero summary: %+v", r.Summary)
	}
}
