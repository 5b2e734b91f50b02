// Package http is the thin transport over the core services: explicit request
// and response structs per operation, validation at the edge, and a fixed
// mapping from error kinds to status codes. Authentication lives upstream; the
// owner id arrives in a header.
package http

import (
	"net/http"
	"time"

	"fintrack/internal/accounts"
	"fintrack/internal/budgets"
	"fintrack/internal/categories"
	"fintrack/internal/goals"
	"fintrack/internal/ledger"
	"fintrack/internal/reports"
)

// Services are the core collaborators the server dispatches to.
type Services struct {
	Ledger     *ledger.Service
	Reports    *reports.Service
	Budgets    *budgets.Service
	Goals      *goals.Service
	Accounts   *accounts.Service
	Categories *categories.Service
}

type Server struct {
	http.Server
	svc Services
}

func NewServer(addr string, svc Services) *Server {
	s := &Server{svc: svc}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PATCH /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("GET /api/accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)

	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("GET /api/goals/{id}", s.handleGetGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("GET /api/goals/{id}/progress", s.handleGoalProgress)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	s.Addr = addr
	s.Handler = withTrace(mux)
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
