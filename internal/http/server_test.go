package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"hobu/internal/core"
)

// fakeLedger is an in-memory CategoryStore + OrderStore for handler tests.
type fakeLedger struct {
	nextCategoryID int64
	nextOrderID    int64
	categories     map[int64]core.Category
	orders         map[int64]core.Order
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		categories: make(map[int64]core.Category),
		orders:     make(map[int64]core.Order),
	}
}

func (f *fakeLedger) AddCategory(_ context.Context, c core.Category) (int64, error) {
	f.nextCategoryID++
	c.ID = f.nextCategoryID
	f.categories[c.ID] = c
	return c.ID, nil
}

func (f *fakeLedger) Categories(context.Context) ([]core.Category, error) {
	out := make([]core.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLedger) UpdateCategory(_ context.Context, c core.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeLedger) DeleteCategory(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeLedger) AddOrder(_ context.Context, o core.Order) (int64, error) {
	f.nextOrderID++
	o.ID = f.nextOrderID
	f.orders[o.ID] = o
	return o.ID, nil
}

func (f *fakeLedger) Orders(context.Context) ([]core.Order, error) {
	out := make([]core.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLedger) QueryOrders(ctx context.Context, filter core.Filter) ([]core.Order, error) {
	all, _ := f.Orders(ctx)
	bounds := core.TimeBounds{}
	if filter.CreatedAt != nil {
		var err error
		bounds, err = filter.CreatedAt.Bounds()
		if err != nil {
			return nil, err
		}
	}
	var out []core.Order
	for _, o := range all {
		if !bounds.Contains(o.CreatedAt) {
			continue
		}
		if !filter.MatchesCategory(o) {
			continue
		}
		out = append(out, o)
	}
	if filter.CreatedAt != nil {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	}
	return out, nil
}

func (f *fakeLedger) UpdateOrder(_ context.Context, o core.Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeLedger) DeleteOrder(_ context.Context, id int64) error {
	delete(f.orders, id)
	return nil
}

func newTestServer(t *testing.T) (*Server, *fakeLedger) {
	t.Helper()
	ledger := newFakeLedger()
	s := NewServer(":0", ledger, ledger, nil)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, ledger
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCategoryLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/categories", `{"name":"Food","color":"#ff0000"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created idResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("first category id = %d, want 1", created.ID)
	}

	rec = doRequest(t, s, http.MethodPut, "/api/categories", `{"id":1,"name":"Groceries","color":"#00ff00"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var categories []core.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Groceries" {
		t.Fatalf("list = %+v", categories)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/categories?id=1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/categories", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delete without id status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPatch, "/api/categories", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("patch status = %d", rec.Code)
	}
}

func TestCreateCategoryRejectsBadDrafts(t *testing.T) {
	s, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"not json", "{oops", http.StatusBadRequest},
		{"carries id", `{"id":7,"name":"Food","color":"#fff"}`, http.StatusBadRequest},
		{"empty name", `{"name":"","color":"#fff"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/categories", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body)
			}
		})
	}
}

func TestOrderCreateAndQuery(t *testing.T) {
	s, _ := newTestServer(t)

	doRequest(t, s, http.MethodPost, "/api/categories", `{"name":"Food","color":"#ff0000"}`)

	rec := doRequest(t, s, http.MethodPost, "/api/orders",
		`{"created_at":1700000000000,"category_id":1,"amount":"12,34","note":"lunch","type":"credit"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create order status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/orders",
		`{"category_id":1,"amount":"zero","type":"credit"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad amount status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/orders",
		`{"category_id":1,"amount":"5","type":"transfer"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad type status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/orders?categories=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("query status = %d", rec.Code)
	}
	var views []orderView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(views) != 1 || views[0].Amount.Cents != 1234 {
		t.Fatalf("orders = %+v", views)
	}
	if views[0].AmountDisplay != "₴12,34" {
		t.Fatalf("amount display = %q", views[0].AmountDisplay)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/orders?from=garbage", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad from bound status = %d", rec.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	s, ledger := newTestServer(t)
	ctx := context.Background()

	_, _ = ledger.AddCategory(ctx, core.Category{Name: "Food", Color: "#ff0000"})
	_, _ = ledger.AddCategory(ctx, core.Category{Name: "Salary", Color: "#00ff00"})
	_, _ = ledger.AddOrder(ctx, core.Order{CreatedAt: 1700000000000, CategoryID: 1, Amount: core.Money{Cents: 100}, Type: core.Credit})
	_, _ = ledger.AddOrder(ctx, core.Order{CreatedAt: 1700000000000, CategoryID: 2, Amount: core.Money{Cents: 500}, Type: core.Debit})

	rec := doRequest(t, s, http.MethodGet, "/api/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d, body %s", rec.Code, rec.Body)
	}
	var report core.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Summary.DebitTotal.Cents != 500 || report.Summary.CreditTotal.Cents != 100 || report.Summary.NetCents != 400 {
		t.Fatalf("summary = %+v", report.Summary)
	}

	// Deleting a category through the API clears the cache, so the next
	// report shows the sentinel label with unchanged totals.
	rec = doRequest(t, s, http.MethodDelete, "/api/categories?id=1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete category status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/report", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	var foodGroup *core.TypedCategoryTotal
	for i := range report.ByCategoryType {
		if report.ByCategoryType[i].CategoryID == 1 {
			foodGroup = &report.ByCategoryType[i]
		}
	}
	if foodGroup == nil {
		t.Fatalf("missing group for deleted category: %+v", report.ByCategoryType)
	}
	if foodGroup.Label != core.DeletedCategoryLabel || foodGroup.Total.Cents != 100 {
		t.Fatalf("deleted category group = %+v", foodGroup)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/report", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("post report status = %d", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
}
