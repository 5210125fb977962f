package http

import (
	"encoding/json"
	"net/http"
	"time"

	"finview/internal/category"
	"finview/internal/core"
)

type budgetRequest struct {
	Category string `json:"category"`
	Amount   any    `json:"amount"`
	Month    string `json:"month"`
}

// parseBudget applies the write-boundary rules for budgets: a known
// expense category, a positive numeric amount, and a well-formed month
// token. A blank month defaults to the current month.
func parseBudget(req budgetRequest, now time.Time) (core.Budget, string) {
	b := core.Budget{
		Category: sanitizeInput(req.Category),
		Month:    sanitizeInput(req.Month),
	}

	if b.Category == "" {
		return core.Budget{}, "Category is required"
	}
	if !isExpenseCategory(b.Category) {
		return core.Budget{}, "Unknown expense category"
	}

	cents, err := coerceAmountCents(req.Amount)
	if err != nil {
		return core.Budget{}, "Amount must be a number"
	}
	if cents <= 0 {
		return core.Budget{}, "Amount must be greater than zero"
	}
	b.Amount = core.Money{Cents: cents}

	if b.Month == "" {
		b.Month = core.MonthToken(now)
	} else if !core.ValidMonth(b.Month) {
		return core.Budget{}, "Month must be a YYYY-MM token"
	}
	return b, ""
}

func isExpenseCategory(value string) bool {
	for _, c := range category.ExpenseValues() {
		if c == value {
			return true
		}
	}
	return false
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListBudgets(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "Budget not found")
		return
	}
	writeJSON(w, http.StatusOK, budgetViews(budgets))
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, problem := parseBudget(req, time.Now())
	if problem != "" {
		writeError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	saved, err := s.budgets.CreateBudget(r.Context(), b)
	if err != nil {
		writeStoreError(w, r, err, "Budget not found")
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, budgetView(saved))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, problem := parseBudget(req, time.Now())
	if problem != "" {
		writeError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	saved, err := s.budgets.UpdateBudget(r.Context(), id, b)
	if err != nil {
		writeStoreError(w, r, err, "Budget not found")
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, budgetView(saved))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.budgets.DeleteBudget(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "Budget not found")
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]category.Descriptor{
		"expense": category.Expense(),
		"income":  category.Income(),
	})
}
