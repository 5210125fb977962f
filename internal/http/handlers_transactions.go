package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"finview/internal/core"
)

type transactionRequest struct {
	Type        string `json:"type"`
	Amount      any    `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// parseTransaction applies the write-boundary rules: amount must be
// numeric and positive, the date must parse, the description must not be
// blank. The store below is more tolerant; this is where loose client
// input gets rejected.
func parseTransaction(req transactionRequest) (core.Transaction, string) {
	t := core.Transaction{
		Type:        core.TransactionType(req.Type),
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
	}

	if !t.Type.Valid() {
		return core.Transaction{}, "Type must be 'expense' or 'income'"
	}

	cents, err := coerceAmountCents(req.Amount)
	if err != nil {
		return core.Transaction{}, "Amount must be a number"
	}
	if cents <= 0 {
		return core.Transaction{}, "Amount must be greater than zero"
	}
	t.Amount = core.Money{Cents: cents}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, "Date must be a valid YYYY-MM-DD date"
	}
	t.Date = date

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err.Error()
	}
	return t, ""
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "Transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, transactionViews(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, problem := parseTransaction(req)
	if problem != "" {
		writeError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	saved, err := s.transactions.Create(r.Context(), t)
	if err != nil {
		writeStoreError(w, r, err, "Transaction not found")
		return
	}

	s.invalidateDashboard()
	slog.InfoContext(r.Context(), "Transaction created",
		"transaction_id", saved.ID, "type", string(saved.Type), "amount_cents", saved.Amount.Cents)
	writeJSON(w, http.StatusCreated, transactionView(saved))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, problem := parseTransaction(req)
	if problem != "" {
		writeError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	saved, err := s.transactions.Update(r.Context(), id, t)
	if err != nil {
		writeStoreError(w, r, err, "Transaction not found")
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, transactionView(saved))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Absent ids delete cleanly; the caller cannot tell the difference
	// and should not have to.
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "Transaction not found")
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
