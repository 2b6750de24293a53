// Package rollup computes the budget dashboard figures for one event:
// aggregate summary totals, the per-category chart series, and the flattened
// vendor payment ledger. Inputs are plain records already fetched by the
// caller; the package never touches storage and never errors on empty input.
//
// All amounts are integer cents, so the "paid in full" check is an exact
// comparison with no floating-point residue.
package rollup

import "log"

type VendorShare struct {
	VendorID    uint
	AmountCents int64
}

type Subcategory struct {
	Name           string
	EstimatedCents int64
	ActualCents    int64
	Vendors        []VendorShare
}

type Budget struct {
	ID             uint
	Category       string
	EstimatedCents int64
	ActualCents    int64
	Subcategories  []Subcategory
}

// VendorInfo is a display-ready vendor record from the vendor directory.
type VendorInfo struct {
	ID     uint
	Name   string
	Avatar string
}

// Directory resolves vendor references for the ledger.
type Directory map[uint]VendorInfo

type Summary struct {
	TotalBudgetCents int64 `json:"total_budget_cents"`
	ProjectedCents   int64 `json:"projected_cents"`
	ActualSpentCents int64 `json:"actual_spent_cents"`
	RemainingCents   int64 `json:"remaining_cents"`
	SpentPercent     int   `json:"spent_percent"`
}

// Summarize rolls the category-level amounts up into the summary cards.
// Projected and actual read the budget-level fields, not the subcategory
// sums; a record whose subcategories diverge from its category amount will
// show different figures here than in the chart, and that mismatch is kept
// as-is rather than reconciled. Remaining may go negative on overrun, but
// SpentPercent is pinned to [0,100] so the progress bar cannot overflow.
func Summarize(totalBudgetCents int64, budgets []Budget) Summary {
	s := Summary{TotalBudgetCents: totalBudgetCents}
	for _, b := range budgets {
		s.ProjectedCents += b.EstimatedCents
		s.ActualSpentCents += b.ActualCents
	}
	s.RemainingCents = totalBudgetCents - s.ActualSpentCents
	if totalBudgetCents > 0 {
		pct := int((s.ActualSpentCents*100 + totalBudgetCents/2) / totalBudgetCents)
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		s.SpentPercent = pct
	}
	return s
}

const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
)

// LedgerRow is one flattened (vendor, subcategory) billing entry.
type LedgerRow struct {
	VendorID       uint   `json:"vendor_id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Task           string `json:"task"` // subcategory name
	TotalCostCents int64  `json:"total_cost_cents"`
	PaidCents      int64  `json:"paid_cents"`
	DueCents       int64  `json:"due_cents"`
	Status         string `json:"status"`
	BudgetID       uint   `json:"budget_id"`
	Subcategory    string `json:"subcategory_name"`
}

// FlattenVendorLedger walks every budget, subcategory, and vendor share and
// produces one ledger row per triple. A vendor assigned across several
// subcategories yields several independent rows; there is deliberately no
// cross-row aggregation, so each task's billing stays visible on its own.
// Shares whose vendor is missing from the directory are dropped (a vendor
// deletion must not surface broken rows to the end user) and logged for
// operators. Due is total minus paid and may go negative on overpayment;
// the status stays "Pending" unless due is exactly zero.
func FlattenVendorLedger(budgets []Budget, dir Directory) []LedgerRow {
	rows := []LedgerRow{}
	for _, b := range budgets {
		for _, sc := range b.Subcategories {
			for _, share := range sc.Vendors {
				v, ok := dir[share.VendorID]
				if !ok {
					log.Printf("[rollup] dropping ledger entry for missing vendor %d (budget %d, %q)",
						share.VendorID, b.ID, sc.Name)
					continue
				}
				due := sc.ActualCents - share.AmountCents
				status := StatusPending
				if due == 0 {
					status = StatusPaid
				}
				rows = append(rows, LedgerRow{
					VendorID:       v.ID,
					Name:           v.Name,
					Avatar:         v.Avatar,
					Task:           sc.Name,
					TotalCostCents: sc.ActualCents,
					PaidCents:      share.AmountCents,
					DueCents:       due,
					Status:         status,
					BudgetID:       b.ID,
					Subcategory:    sc.Name,
				})
			}
		}
	}
	return rows
}

// ChartSeries holds parallel arrays ready for the pie/bar chart, one entry
// per category in the order the budgets were fetched.
type ChartSeries struct {
	Labels    []string `json:"labels"`
	Estimated []int64  `json:"estimated"`
	Actual    []int64  `json:"actual"`
}

func CategoryChartSeries(budgets []Budget) ChartSeries {
	s := ChartSeries{
		Labels:    make([]string, 0, len(budgets)),
		Estimated: make([]int64, 0, len(budgets)),
		Actual:    make([]int64, 0, len(budgets)),
	}
	for _, b := range budgets {
		s.Labels = append(s.Labels, b.Category)
		s.Estimated = append(s.Estimated, b.EstimatedCents)
		s.Actual = append(s.Actual, b.ActualCents)
	}
	return s
}
