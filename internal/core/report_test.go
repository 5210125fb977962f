package core

import (
	"testing"
	"time"
)

// Fixed evaluation instant for every report test: September 2025.
var at = time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

func tx(typ TransactionType, category string, cents int64, date time.Time) Transaction {
	return Transaction{
		Type:        typ,
		Amount:      Money{Cents: cents},
		Description: "t",
		Category:    category,
		Date:        date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "food", 5000, day(2025, 9, 3)),
		tx(Income, "salary", 100000, day(2025, 9, 1)),
		tx(Expense, "transport", 2000, day(2025, 8, 20)), // last month, excluded
		{Type: Expense, Description: "bad", Amount: Money{Cents: 999}}, // zero date, excluded
	}
	budgets := []Budget{
		{Category: "food", Amount: Money{Cents: 20000}, Month: "2023-01"},
		{Category: "transport", Amount: Money{Cents: 10000}},
	}

	s := Summarize(txs, budgets, at)
	if s.Income.Cents != 100000 || s.Expense.Cents != 5000 {
		t.Fatalf("income=%d expense=%d", s.Income.Cents, s.Expense.Cents)
	}
	if s.Net.Cents != 95000 {
		t.Fatalf("net=%d, want 95000", s.Net.Cents)
	}
	// Budget months are labels only; both rows count.
	if s.TotalBudget.Cents != 30000 {
		t.Fatalf("totalBudget=%d, want 30000", s.TotalBudget.Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, at)
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Net.Cents != 0 || s.TotalBudget.Cents != 0 {
		t.Fatalf("empty inputs must produce zero summary, got %+v", s)
	}
}

func TestUtilizationsUnderBudget(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "food", 5000, day(2025, 9, 3)),
		tx(Income, "salary", 100000, day(2025, 9, 1)),
	}
	budgets := []Budget{{ID: "b1", Category: "food", Amount: Money{Cents: 20000}}}

	us := Utilizations(budgets, txs, at)
	if len(us) != 1 {
		t.Fatalf("expected 1 utilization, got %d", len(us))
	}
	u := us[0]
	if u.Spent.Cents != 5000 || u.Remaining.Cents != 15000 {
		t.Fatalf("spent=%d remaining=%d", u.Spent.Cents, u.Remaining.Cents)
	}
	if u.Percentage != 25.0 {
		t.Fatalf("percentage=%v, want 25.0", u.Percentage)
	}
	if u.OverBudget {
		t.Fatal("unexpected over-budget flag")
	}
}

func TestUtilizationsOverBudget(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "food", 5000, day(2025, 9, 3)),
		tx(Expense, "food", 18000, day(2025, 9, 10)),
	}
	budgets := []Budget{{ID: "b1", Category: "food", Amount: Money{Cents: 20000}}}

	u := Utilizations(budgets, txs, at)[0]
	if u.Spent.Cents != 23000 {
		t.Fatalf("spent=%d, want 23000", u.Spent.Cents)
	}
	if u.Remaining.Cents != 0 {
		t.Fatalf("remaining=%d, want 0 (clamped)", u.Remaining.Cents)
	}
	if u.Percentage != 100 {
		t.Fatalf("percentage=%v, want clamped 100", u.Percentage)
	}
	if !u.OverBudget {
		t.Fatal("expected over-budget flag")
	}
	// Raw overshoot stays recoverable from the unclamped fields.
	if over := u.Spent.Cents - u.Amount.Cents; over != 3000 {
		t.Fatalf("overshoot=%d, want 3000", over)
	}
}

func TestUtilizationsZeroAmountBudget(t *testing.T) {
	txs := []Transaction{tx(Expense, "food", 100, day(2025, 9, 2))}
	budgets := []Budget{{ID: "b1", Category: "food", Amount: Money{}}}

	u := Utilizations(budgets, txs, at)[0]
	if u.Percentage != 0 {
		t.Fatalf("percentage=%v, want 0 for zero budget", u.Percentage)
	}
	if !u.OverBudget {
		t.Fatal("zero budget with positive spend must still flag over-budget")
	}
}

func TestUtilizationsIgnoreOtherPeriodsAndTypes(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "food", 7000, day(2025, 8, 30)),   // previous month
		tx(Expense, "food", 7000, day(2024, 9, 10)),   // same month, previous year
		tx(Income, "food", 7000, day(2025, 9, 10)),    // wrong type
		{Type: Expense, Category: "food", Amount: Money{Cents: 7000}}, // zero date
	}
	budgets := []Budget{{ID: "b1", Category: "food", Amount: Money{Cents: 1000}}}

	u := Utilizations(budgets, txs, at)[0]
	if u.Spent.Cents != 0 {
		t.Fatalf("spent=%d, want 0", u.Spent.Cents)
	}
	if u.OverBudget {
		t.Fatal("no current-period spend, flag must be false")
	}
}

func TestUtilizationsPreserveInputOrder(t *testing.T) {
	budgets := []Budget{
		{ID: "b1", Category: "entertainment", Amount: Money{Cents: 100}},
		{ID: "b2", Category: "food", Amount: Money{Cents: 200}},
		{ID: "b3", Category: "transport", Amount: Money{Cents: 300}},
	}
	us := Utilizations(budgets, nil, at)
	for i, want := range []string{"b1", "b2", "b3"} {
		if us[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, us[i].ID, want)
		}
	}
}

func TestExpenseBreakdown(t *testing.T) {
	catalog := []string{"food", "transport", "shopping"}
	txs := []Transaction{
		tx(Expense, "food", 3000, day(2025, 9, 2)),
		tx(Expense, "food", 1500, day(2025, 9, 9)),
		tx(Expense, "shopping", 500, day(2025, 9, 12)),
		tx(Expense, "transport", 9000, day(2025, 8, 2)), // out of period
		tx(Expense, "legacy-cat", 700, day(2025, 9, 4)), // not in catalog
		tx(Income, "food", 400, day(2025, 9, 4)),        // wrong type
	}

	bd := ExpenseBreakdown(txs, catalog, at)
	if len(bd) != 2 {
		t.Fatalf("expected sparse 2-row breakdown, got %d rows", len(bd))
	}
	if bd[0].Category != "food" || bd[0].Amount.Cents != 4500 {
		t.Fatalf("row 0 = %+v", bd[0])
	}
	if bd[1].Category != "shopping" || bd[1].Amount.Cents != 500 {
		t.Fatalf("row 1 = %+v", bd[1])
	}
	for _, row := range bd {
		if row.Amount.Cents == 0 {
			t.Fatalf("zero row leaked into breakdown: %+v", row)
		}
	}
}

func TestMonthlySeries(t *testing.T) {
	var txs []Transaction
	// Eight distinct months, one expense each, plus noise.
	for m := 1; m <= 8; m++ {
		txs = append(txs, tx(Expense, "food", int64(m*100), day(2025, time.Month(m), 10)))
	}
	txs = append(txs,
		tx(Expense, "food", 50, day(2025, 8, 20)),   // second record in August
		tx(Income, "salary", 9999, day(2025, 7, 1)), // income never buckets
		Transaction{Type: Expense, Amount: Money{Cents: 1}}, // zero date skipped
	)

	series := MonthlySeries(txs, 6)
	if len(series) != 6 {
		t.Fatalf("series length=%d, want 6", len(series))
	}
	// Truncation keeps the most recent buckets: March..August.
	if series[0].Month != 3 || series[5].Month != 8 {
		t.Fatalf("series window = %d..%d, want 3..8", series[0].Month, series[5].Month)
	}
	seen := map[int]bool{}
	for i, b := range series {
		if i > 0 {
			prev := series[i-1]
			if b.Year < prev.Year || (b.Year == prev.Year && b.Month <= prev.Month) {
				t.Fatalf("series not strictly ascending at %d", i)
			}
		}
		if seen[b.Year*100+b.Month] {
			t.Fatalf("duplicate period key %d-%d", b.Year, b.Month)
		}
		seen[b.Year*100+b.Month] = true
	}
	aug := series[5]
	if aug.Amount.Cents != 850 || aug.Count != 2 {
		t.Fatalf("august bucket = %+v", aug)
	}
}

func TestMonthlySeriesCrossYearOrder(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "food", 100, day(2025, 1, 5)),
		tx(Expense, "food", 100, day(2024, 12, 5)),
	}
	series := MonthlySeries(txs, 6)
	if len(series) != 2 || series[0].Year != 2024 || series[1].Year != 2025 {
		t.Fatalf("cross-year ordering broken: %+v", series)
	}
}

func TestRecent(t *testing.T) {
	var txs []Transaction
	for i := 0; i < 8; i++ {
		txs = append(txs, tx(Expense, "food", int64(i+1), day(2025, 9, 8-i)))
	}
	r := Recent(txs, 5)
	if len(r) != 5 {
		t.Fatalf("recent length=%d", len(r))
	}
	// The store order is the contract; Recent must not reorder.
	if r[0].Amount.Cents != 1 || r[4].Amount.Cents != 5 {
		t.Fatalf("recent reordered the input: %+v", r)
	}
	if got := Recent(txs[:2], 5); len(got) != 2 {
		t.Fatalf("short input length=%d", len(got))
	}
	if got := Recent(nil, 5); len(got) != 0 {
		t.Fatalf("nil input length=%d", len(got))
	}
}

// Full scenario from the dashboard: one food expense, one salary income,
// one food budget.
func TestDashboardScenario(t *testing.T) {
	txs := []Transaction{
		tx(Expense, "food", 5000, day(2025, 9, 3)),
		tx(Income, "salary", 100000, day(2025, 9, 1)),
	}
	budgets := []Budget{{ID: "b1", Category: "food", Amount: Money{Cents: 20000}}}

	s := Summarize(txs, budgets, at)
	if s.Income.Cents != 100000 || s.Expense.Cents != 5000 || s.Net.Cents != 95000 || s.TotalBudget.Cents != 20000 {
		t.Fatalf("summary = %+v", s)
	}
	u := Utilizations(budgets, txs, at)[0]
	if u.Spent.Cents != 5000 || u.Remaining.Cents != 15000 || u.Percentage != 25.0 || u.OverBudget {
		t.Fatalf("utilization = %+v", u)
	}

	// A second 180.00 food expense pushes the budget over.
	txs = append(txs, tx(Expense, "food", 18000, day(2025, 9, 20)))
	u = Utilizations(budgets, txs, at)[0]
	if u.Spent.Cents != 23000 || u.Remaining.Cents != 0 || u.Percentage != 100 || !u.OverBudget {
		t.Fatalf("utilization after overshoot = %+v", u)
	}

	// A last-month transaction never moves the period totals but still
	// lands in its own series bucket.
	txs = append(txs, tx(Expense, "food", 777, day(2025, 8, 28)))
	s = Summarize(txs, budgets, at)
	if s.Expense.Cents != 23000 {
		t.Fatalf("expense total moved by out-of-period record: %d", s.Expense.Cents)
	}
	series := MonthlySeries(txs, 6)
	var aug *MonthBucket
	for i := range series {
		if series[i].Year == 2025 && series[i].Month == 8 {
			aug = &series[i]
		}
	}
	if aug == nil || aug.Amount.Cents != 777 || aug.Count != 1 {
		t.Fatalf("august bucket missing or wrong: %+v", aug)
	}
}
