package core

import (
	"sort"
	"time"
)

// Aggregate views derived from the raw transaction and budget lists.
// Every function here is pure: the evaluation instant is an explicit
// parameter so the same inputs always produce the same outputs. Callers
// at the boundary pass time.Now().
//
// Malformed records degrade by exclusion: a transaction with a zero date
// is skipped by the period filter and the series grouping, and never
// aborts the pass for its well-formed siblings.

type (
	// Summary holds the dashboard card totals for the evaluation month.
	// TotalBudget sums every budget row regardless of its month token.
	Summary struct {
		Income      Money
		Expense     Money
		Net         Money
		TotalBudget Money
	}

	// BudgetUtilization is one budget row scored against the evaluation
	// month's spend. Percentage is clamped to [0, 100] for display;
	// OverBudget is the unclamped signal and can be true even when the
	// clamp hides the overshoot (amount zero, spent positive).
	BudgetUtilization struct {
		ID         string
		Category   string
		Amount     Money
		Spent      Money
		Remaining  Money
		Percentage float64
		OverBudget bool
	}

	// CategorySpend is one expense category's total for the evaluation
	// month. Breakdowns are sparse: zero rows are never emitted.
	CategorySpend struct {
		Category string
		Amount   Money
	}

	// MonthBucket is one month's expense total and record count in the
	// time-series view.
	MonthBucket struct {
		Year   int
		Month  int
		Amount Money
		Count  int
	}
)

// InPeriod reports whether the transaction's date falls in the same
// calendar month and year as the evaluation instant.
func (t Transaction) InPeriod(at time.Time) bool {
	if t.Date.IsZero() {
		return false
	}
	return t.Date.Year() == at.Year() && t.Date.Month() == at.Month()
}

// Summarize computes the dashboard totals for the month containing at.
func Summarize(txs []Transaction, budgets []Budget, at time.Time) Summary {
	var s Summary
	for _, t := range txs {
		if !t.InPeriod(at) {
			continue
		}
		switch t.Type {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expense.Cents += t.Amount.Cents
		}
	}
	s.Net = Money{Cents: s.Income.Cents - s.Expense.Cents}
	for _, b := range budgets {
		s.TotalBudget.Cents += b.Amount.Cents
	}
	return s
}

// Utilizations scores every budget against the evaluation month's
// expense spend for its category. Input order is preserved; the budget's
// own month token is intentionally ignored when matching.
func Utilizations(budgets []Budget, txs []Transaction, at time.Time) []BudgetUtilization {
	if len(budgets) == 0 {
		return nil
	}
	spent := make(map[string]int64, len(budgets))
	for _, t := range txs {
		if t.Type != Expense || !t.InPeriod(at) {
			continue
		}
		spent[t.Category] += t.Amount.Cents
	}

	out := make([]BudgetUtilization, 0, len(budgets))
	for _, b := range budgets {
		sc := spent[b.Category]
		u := BudgetUtilization{
			ID:         b.ID,
			Category:   b.Category,
			Amount:     b.Amount,
			Spent:      Money{Cents: sc},
			OverBudget: sc > b.Amount.Cents,
		}
		if rem := b.Amount.Cents - sc; rem > 0 {
			u.Remaining = Money{Cents: rem}
		}
		if b.Amount.Cents > 0 {
			pct := float64(sc) / float64(b.Amount.Cents) * 100
			if pct > 100 {
				pct = 100
			}
			u.Percentage = pct
		}
		out = append(out, u)
	}
	return out
}

// ExpenseBreakdown sums the evaluation month's expense spend per catalog
// category, in catalog order. Categories with no matching spend are
// excluded rather than zero-filled, and spend recorded under categories
// absent from the catalog is left out, matching the sparse contract the
// chart consumers expect.
func ExpenseBreakdown(txs []Transaction, categories []string, at time.Time) []CategorySpend {
	sums := make(map[string]int64)
	for _, t := range txs {
		if t.Type != Expense || !t.InPeriod(at) {
			continue
		}
		sums[t.Category] += t.Amount.Cents
	}

	var out []CategorySpend
	for _, c := range categories {
		if s := sums[c]; s != 0 {
			out = append(out, CategorySpend{Category: c, Amount: Money{Cents: s}})
		}
	}
	return out
}

// MonthlySeries groups all expense transactions by calendar month,
// regardless of the evaluation period, and returns the most recent max
// buckets in chronological order. Months without transactions are never
// synthesized.
func MonthlySeries(txs []Transaction, max int) []MonthBucket {
	type key struct{ year, month int }
	buckets := make(map[key]*MonthBucket)
	for _, t := range txs {
		if t.Type != Expense || t.Date.IsZero() {
			continue
		}
		k := key{t.Date.Year(), int(t.Date.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{Year: k.year, Month: k.month}
			buckets[k] = b
		}
		b.Amount.Cents += t.Amount.Cents
		b.Count++
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if max > 0 && len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

// Recent returns the first n transactions of the store-ordered list.
// The list contract is date descending, so no extra sort happens here.
func Recent(txs []Transaction, n int) []Transaction {
	if n < 0 {
		n = 0
	}
	if len(txs) > n {
		txs = txs[:n]
	}
	return txs
}
