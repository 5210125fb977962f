// Package http serves the JSON API: transaction and budget CRUD, the
// category catalog, and the aggregated dashboard.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"finview/internal/cache"
	"finview/internal/core"
	"finview/internal/store"
)

// TransactionAPI is the transaction surface the handlers consume. The
// concrete implementation routes writes through the change-event
// publisher.
type TransactionAPI interface {
	List(ctx context.Context) ([]core.Transaction, error)
	Create(ctx context.Context, t core.Transaction) (core.Transaction, error)
	Update(ctx context.Context, id string, t core.Transaction) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	http.Server
	transactions TransactionAPI
	budgets      store.BudgetStore
	rateLimiter  *rateLimiter

	// Dashboard responses are cached per evaluation month and cleared on
	// every write, so readers never see a dashboard older than the last
	// mutation.
	dashboardCache *cache.LRUCache[dashboardView]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. cacheTTL bounds how stale an untouched dashboard may be.
func NewServer(addr string, transactions TransactionAPI, budgets store.BudgetStore, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		transactions:   transactions,
		budgets:        budgets,
		rateLimiter:    newRateLimiter(),
		dashboardCache: cache.NewLRUCache[dashboardView](12, cacheTTL),
		cacheManager:   cache.NewManager(),
	}
	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/budgets", s.withMiddleware(s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.withMiddleware(s.handleCreateBudget))
	mux.HandleFunc("PUT /api/budgets/{id}", s.withMiddleware(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.withMiddleware(s.handleDeleteBudget))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

// invalidateDashboard is called after every successful write.
func (s *Server) invalidateDashboard() {
	s.dashboardCache.Clear()
}

// Shutdown stops the HTTP server and the background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
