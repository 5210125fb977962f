package http

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"finview/internal/core"
)

func dashboardCacheKey(at time.Time) string {
	return "dashboard:" + core.MonthToken(at)
}

// handleDashboard loads transactions and budgets concurrently, derives
// the aggregate views and formats them. The assembled view is cached per
// evaluation month until the TTL lapses or a write clears it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	key := dashboardCacheKey(at)

	if view, ok := s.dashboardCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "key", key)
		writeJSON(w, http.StatusOK, view)
		return
	}

	var (
		txs     []core.Transaction
		budgets []core.Budget
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		txs, err = s.transactions.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListBudgets(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeStoreError(w, r, err, "Dashboard data not found")
		return
	}

	view := buildDashboard(txs, budgets, at)
	s.dashboardCache.Set(key, view)
	writeJSON(w, http.StatusOK, view)
}
