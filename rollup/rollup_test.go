package rollup

import (
	"reflect"
	"testing"
)

func TestSummarizeOverrunPinsPercent(t *testing.T) {
	// 1000.00 budgeted, 5000.00 spent: the bar pins at 100 while remaining
	// goes negative to show the overrun.
	s := Summarize(100000, []Budget{{Category: "Venue", ActualCents: 500000}})
	if s.SpentPercent != 100 {
		t.Fatalf("SpentPercent = %d, want 100", s.SpentPercent)
	}
	if s.RemainingCents != -400000 {
		t.Fatalf("RemainingCents = %d, want -400000", s.RemainingCents)
	}
}

func TestSummarizeZeroBudget(t *testing.T) {
	s := Summarize(0, nil)
	want := Summary{}
	if s != want {
		t.Fatalf("Summarize(0, nil) = %+v, want all zero", s)
	}
}

func TestSummarizeTotals(t *testing.T) {
	budgets := []Budget{
		{Category: "Catering", EstimatedCents: 120000, ActualCents: 90000},
		{Category: "Venue", EstimatedCents: 300000, ActualCents: 310000},
	}
	s := Summarize(500000, budgets)
	if s.ProjectedCents != 420000 {
		t.Fatalf("ProjectedCents = %d", s.ProjectedCents)
	}
	if s.ActualSpentCents != 400000 {
		t.Fatalf("ActualSpentCents = %d", s.ActualSpentCents)
	}
	if s.RemainingCents != 100000 {
		t.Fatalf("RemainingCents = %d", s.RemainingCents)
	}
	if s.SpentPercent != 80 {
		t.Fatalf("SpentPercent = %d, want 80", s.SpentPercent)
	}
}

// The summary reads the category-level amounts of record, even when the
// subcategories sum to something else. Both figures are shown elsewhere in
// the product; reconciling them here would silently change user-visible
// totals.
func TestSummarizeIgnoresSubcategoryDivergence(t *testing.T) {
	budgets := []Budget{{
		Category:       "Catering",
		EstimatedCents: 100000,
		ActualCents:    50000,
		Subcategories: []Subcategory{
			{Name: "Cake", EstimatedCents: 999999, ActualCents: 999999},
		},
	}}
	s := Summarize(200000, budgets)
	if s.ProjectedCents != 100000 || s.ActualSpentCents != 50000 {
		t.Fatalf("summary must use category-level amounts, got %+v", s)
	}
}

func TestFlattenVendorLedger(t *testing.T) {
	budgets := []Budget{{
		ID:       7,
		Category: "Catering",
		Subcategories: []Subcategory{{
			Name:        "Cake",
			ActualCents: 50000,
			Vendors:     []VendorShare{{VendorID: 1, AmountCents: 50000}},
		}},
	}}
	dir := Directory{1: {ID: 1, Name: "Acme Bakery", Avatar: "/avatar/acme.jpg"}}

	rows := FlattenVendorLedger(budgets, dir)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Name != "Acme Bakery" || r.Task != "Cake" {
		t.Fatalf("row identity wrong: %+v", r)
	}
	if r.TotalCostCents != 50000 || r.PaidCents != 50000 || r.DueCents != 0 {
		t.Fatalf("row amounts wrong: %+v", r)
	}
	if r.Status != StatusPaid {
		t.Fatalf("fully paid row must be %q, got %q", StatusPaid, r.Status)
	}
}

func TestFlattenVendorLedgerDropsDanglingRefs(t *testing.T) {
	budgets := []Budget{{
		Category: "Catering",
		Subcategories: []Subcategory{{
			Name:        "Cake",
			ActualCents: 50000,
			Vendors:     []VendorShare{{VendorID: 1, AmountCents: 50000}},
		}},
	}}
	rows := FlattenVendorLedger(budgets, Directory{})
	if len(rows) != 0 {
		t.Fatalf("dangling vendor ref must be dropped, got %+v", rows)
	}
}

func TestFlattenVendorLedgerStatuses(t *testing.T) {
	budgets := []Budget{{
		Category: "Music",
		Subcategories: []Subcategory{{
			Name:        "DJ",
			ActualCents: 30000,
			Vendors: []VendorShare{
				{VendorID: 1, AmountCents: 30000}, // exact
				{VendorID: 2, AmountCents: 10000}, // underpaid
				{VendorID: 3, AmountCents: 40000}, // overpaid
			},
		}},
	}}
	dir := Directory{
		1: {ID: 1, Name: "A"},
		2: {ID: 2, Name: "B"},
		3: {ID: 3, Name: "C"},
	}
	rows := FlattenVendorLedger(budgets, dir)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Status != StatusPaid || rows[0].DueCents != 0 {
		t.Fatalf("exact payment: %+v", rows[0])
	}
	if rows[1].Status != StatusPending || rows[1].DueCents != 20000 {
		t.Fatalf("underpayment: %+v", rows[1])
	}
	// Overpayment shows a negative due but still reads Pending; only an
	// exact zero counts as Paid.
	if rows[2].Status != StatusPending || rows[2].DueCents != -10000 {
		t.Fatalf("overpayment: %+v", rows[2])
	}
}

// One vendor across several subcategories yields independent rows, never a
// merged per-vendor total.
func TestFlattenVendorLedgerNoCrossRowAggregation(t *testing.T) {
	budgets := []Budget{
		{
			ID:       1,
			Category: "Catering",
			Subcategories: []Subcategory{
				{Name: "Cake", ActualCents: 10000, Vendors: []VendorShare{{VendorID: 9, AmountCents: 10000}}},
				{Name: "Drinks", ActualCents: 20000, Vendors: []VendorShare{{VendorID: 9, AmountCents: 5000}}},
			},
		},
		{
			ID:       2,
			Category: "Decor",
			Subcategories: []Subcategory{
				{Name: "Flowers", ActualCents: 15000, Vendors: []VendorShare{{VendorID: 9, AmountCents: 0}}},
			},
		},
	}
	rows := FlattenVendorLedger(budgets, Directory{9: {ID: 9, Name: "Omni Co"}})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 independent rows", len(rows))
	}
	tasks := []string{rows[0].Task, rows[1].Task, rows[2].Task}
	if !reflect.DeepEqual(tasks, []string{"Cake", "Drinks", "Flowers"}) {
		t.Fatalf("row order should follow input order, got %v", tasks)
	}
}

func TestCategoryChartSeries(t *testing.T) {
	budgets := []Budget{
		{Category: "Venue", EstimatedCents: 100, ActualCents: 90},
		{Category: "Catering", EstimatedCents: 200, ActualCents: 210},
	}
	s := CategoryChartSeries(budgets)
	if !reflect.DeepEqual(s.Labels, []string{"Venue", "Catering"}) {
		t.Fatalf("labels out of order: %v", s.Labels)
	}
	if !reflect.DeepEqual(s.Estimated, []int64{100, 200}) || !reflect.DeepEqual(s.Actual, []int64{90, 210}) {
		t.Fatalf("series mismatch: %+v", s)
	}
	empty := CategoryChartSeries(nil)
	if len(empty.Labels) != 0 || len(empty.Estimated) != 0 || len(empty.Actual) != 0 {
		t.Fatalf("empty input must yield empty series, got %+v", empty)
	}
}
