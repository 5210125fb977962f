package http

import (
	"time"

	"finview/internal/category"
	"finview/internal/core"
)

// View models for the wire. Adapters here only format what core already
// derived: currency strings, date strings, catalog descriptors. No
// numeric derivation happens in this file.

type transactionJSON struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type budgetJSON struct {
	ID        string     `json:"id"`
	Category  string     `json:"category"`
	Amount    float64    `json:"amount"`
	Month     string     `json:"month"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func transactionView(t core.Transaction) transactionJSON {
	v := transactionJSON{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.Dollars(),
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt,
	}
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		v.UpdatedAt = &u
	}
	return v
}

func transactionViews(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(txs))
	for _, t := range txs {
		out = append(out, transactionView(t))
	}
	return out
}

func budgetView(b core.Budget) budgetJSON {
	v := budgetJSON{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount.Dollars(),
		Month:     b.Month,
		CreatedAt: b.CreatedAt,
	}
	if !b.UpdatedAt.IsZero() {
		u := b.UpdatedAt
		v.UpdatedAt = &u
	}
	return v
}

func budgetViews(budgets []core.Budget) []budgetJSON {
	out := make([]budgetJSON, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetView(b))
	}
	return out
}

// Dashboard view models.

type summaryCard struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type summaryView struct {
	Income      summaryCard `json:"income"`
	Expense     summaryCard `json:"expense"`
	Net         summaryCard `json:"net"`
	TotalBudget summaryCard `json:"totalBudget"`
}

type budgetRowView struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	CategoryLabel  string  `json:"categoryLabel"`
	Color          string  `json:"color"`
	Icon           string  `json:"icon"`
	Amount         float64 `json:"amount"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	Percentage     float64 `json:"percentage"`
	IsOverBudget   bool    `json:"isOverBudget"`
	AmountLabel    string  `json:"amountLabel"`
	SpentLabel     string  `json:"spentLabel"`
	RemainingLabel string  `json:"remainingLabel"`
}

type categorySliceView struct {
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	Amount      float64 `json:"amount"`
	AmountLabel string  `json:"amountLabel"`
}

type monthPointView struct {
	PeriodLabel string  `json:"periodLabel"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Amount      float64 `json:"amount"`
	AmountLabel string  `json:"amountLabel"`
	Count       int     `json:"count"`
}

type recentRowView struct {
	transactionJSON
	CategoryLabel string `json:"categoryLabel"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	AmountLabel   string `json:"amountLabel"`
}

type dashboardView struct {
	Summary            summaryView         `json:"summary"`
	Budgets            []budgetRowView     `json:"budgets"`
	CategoryBreakdown  []categorySliceView `json:"categoryBreakdown"`
	MonthlySeries      []monthPointView    `json:"monthlySeries"`
	RecentTransactions []recentRowView     `json:"recentTransactions"`
}

func card(m core.Money) summaryCard {
	return summaryCard{Value: m.Dollars(), Label: core.FormatUSD(m.Cents)}
}

const (
	monthlySeriesLength = 6
	recentListLength    = 5
)

// buildDashboard assembles the full dashboard view at the given instant.
func buildDashboard(txs []core.Transaction, budgets []core.Budget, at time.Time) dashboardView {
	sum := core.Summarize(txs, budgets, at)
	view := dashboardView{
		Summary: summaryView{
			Income:      card(sum.Income),
			Expense:     card(sum.Expense),
			Net:         card(sum.Net),
			TotalBudget: card(sum.TotalBudget),
		},
		Budgets:            []budgetRowView{},
		CategoryBreakdown:  []categorySliceView{},
		MonthlySeries:      []monthPointView{},
		RecentTransactions: []recentRowView{},
	}

	for _, u := range core.Utilizations(budgets, txs, at) {
		d := category.LookupOrDefault(u.Category)
		view.Budgets = append(view.Budgets, budgetRowView{
			ID:             u.ID,
			Category:       u.Category,
			CategoryLabel:  d.Label,
			Color:          d.Color,
			Icon:           d.Icon,
			Amount:         u.Amount.Dollars(),
			Spent:          u.Spent.Dollars(),
			Remaining:      u.Remaining.Dollars(),
			Percentage:     u.Percentage,
			IsOverBudget:   u.OverBudget,
			AmountLabel:    core.FormatUSD(u.Amount.Cents),
			SpentLabel:     core.FormatUSD(u.Spent.Cents),
			RemainingLabel: core.FormatUSD(u.Remaining.Cents),
		})
	}

	for _, c := range core.ExpenseBreakdown(txs, category.ExpenseValues(), at) {
		d := category.LookupOrDefault(c.Category)
		view.CategoryBreakdown = append(view.CategoryBreakdown, categorySliceView{
			Category:    c.Category,
			Label:       d.Label,
			Color:       d.Color,
			Icon:        d.Icon,
			Amount:      c.Amount.Dollars(),
			AmountLabel: core.FormatUSD(c.Amount.Cents),
		})
	}

	for _, b := range core.MonthlySeries(txs, monthlySeriesLength) {
		period := time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
		view.MonthlySeries = append(view.MonthlySeries, monthPointView{
			PeriodLabel: period.Format("Jan 2006"),
			Year:        b.Year,
			Month:       b.Month,
			Amount:      b.Amount.Dollars(),
			AmountLabel: core.FormatUSD(b.Amount.Cents),
			Count:       b.Count,
		})
	}

	for _, t := range core.Recent(txs, recentListLength) {
		d := category.LookupOrDefault(t.Category)
		view.RecentTransactions = append(view.RecentTransactions, recentRowView{
			transactionJSON: transactionView(t),
			CategoryLabel:   d.Label,
			Color:           d.Color,
			Icon:            d.Icon,
			AmountLabel:     core.FormatUSD(t.Amount.Cents),
		})
	}

	return view
}
