package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fintrack/internal/accounts"
	"fintrack/internal/budgets"
	"fintrack/internal/categories"
	"fintrack/internal/goals"
	"fintrack/internal/ledger"
	"fintrack/internal/reports"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	srv := NewServer("127.0.0.1:0", Services{
		Ledger:     ledger.New(repo, nil),
		Reports:    reports.New(repo),
		Budgets:    budgets.New(repo),
		Goals:      goals.New(repo),
		Accounts:   accounts.New(repo),
		Categories: categories.New(repo),
	})
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, userID int64, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	return resp, out.Bytes()
}

func decodeBody(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decoding response %q: %v", data, err)
	}
}

func createAccountT(t *testing.T, ts *httptest.Server, userID int64, name string) int64 {
	t.Helper()
	resp, body := doRequest(t, ts, http.MethodPost, "/api/accounts", userID, map[string]string{
		"name": name, "type": "bank", "currency": "KES",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating account: status %d, body %s", resp.StatusCode, body)
	}
	var out accountResponse
	decodeBody(t, body, &out)
	return out.ID
}

func createCategoryT(t *testing.T, ts *httptest.Server, userID int64, name, kind string) int64 {
	t.Helper()
	resp, body := doRequest(t, ts, http.MethodPost, "/api/categories", userID, map[string]string{
		"name": name, "kind": kind,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating category: status %d, body %s", resp.StatusCode, body)
	}
	var out categoryResponse
	decodeBody(t, body, &out)
	return out.ID
}

func accountBalance(t *testing.T, ts *httptest.Server, userID, accountID int64) string {
	t.Helper()
	resp, body := doRequest(t, ts, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountID), userID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("getting account: status %d, body %s", resp.StatusCode, body)
	}
	var out accountResponse
	decodeBody(t, body, &out)
	return out.Balance
}

func TestMissingUserHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doRequest(t, ts, http.MethodGet, "/api/accounts", 0, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestTransactionLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	accountID := createAccountT(t, ts, 1, "Checking")
	categoryID := createCategoryT(t, ts, 1, "Salary", "income")

	resp, body := doRequest(t, ts, http.MethodPost, "/api/transactions", 1, map[string]any{
		"account_id":  accountID,
		"category_id": categoryID,
		"type":        "income",
		"amount":      "250.50",
		"date":        "2025-03-10",
		"description": "march pay",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating transaction: status %d, body %s", resp.StatusCode, body)
	}
	var created transactionResponse
	decodeBody(t, body, &created)
	if created.Amount != "250.50" || created.Currency != "KES" {
		t.Fatalf("unexpected transaction response: %+v", created)
	}
	if got := accountBalance(t, ts, 1, accountID); got != "250.50" {
		t.Fatalf("balance after create = %s, want 250.50", got)
	}

	resp, body = doRequest(t, ts, http.MethodPatch, fmt.Sprintf("/api/transactions/%d", created.ID), 1, map[string]any{
		"amount": "100.00",
		"type":   "expense",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("updating transaction: status %d, body %s", resp.StatusCode, body)
	}
	if got := accountBalance(t, ts, 1, accountID); got != "-100.00" {
		t.Fatalf("balance after update = %s, want -100.00", got)
	}

	resp, body = doRequest(t, ts, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID), 1, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("deleting transaction: status %d, body %s", resp.StatusCode, body)
	}
	if got := accountBalance(t, ts, 1, accountID); got != "0.00" {
		t.Fatalf("balance after delete = %s, want 0.00", got)
	}

	resp, _ = doRequest(t, ts, http.MethodGet, fmt.Sprintf("/api/transactions/%d", created.ID), 1, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestValidationMapsTo422(t *testing.T) {
	ts := newTestServer(t)
	categoryID := createCategoryT(t, ts, 1, "Food", "expense")

	resp, body := doRequest(t, ts, http.MethodPost, "/api/transactions", 1, map[string]any{
		"category_id": categoryID,
		"type":        "expense",
		"amount":      "-5",
		"date":        "2025-03-10",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for negative amount, got %d, body %s", resp.StatusCode, body)
	}

	resp, _ = doRequest(t, ts, http.MethodPost, "/api/transactions", 1, map[string]any{
		"category_id": categoryID,
		"type":        "transfer",
		"amount":      "5",
		"date":        "2025-03-10",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad type, got %d", resp.StatusCode)
	}
}

func TestOwnerScoping(t *testing.T) {
	ts := newTestServer(t)
	accountID := createAccountT(t, ts, 1, "Mine")

	resp, _ := doRequest(t, ts, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountID), 2, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign account, got %d", resp.StatusCode)
	}
}

func TestDuplicateBudgetMapsTo409(t *testing.T) {
	ts := newTestServer(t)
	categoryID := createCategoryT(t, ts, 1, "Food", "expense")

	payload := map[string]any{"category_id": categoryID, "month": "2025-03", "amount": "500"}
	resp, body := doRequest(t, ts, http.MethodPost, "/api/budgets", 1, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating budget: status %d, body %s", resp.StatusCode, body)
	}

	resp, _ = doRequest(t, ts, http.MethodPost, "/api/budgets", 1, payload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate budget, got %d", resp.StatusCode)
	}
}

func TestGoalProgressEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/goals", 1, map[string]any{
		"name": "Emergency fund", "target_amount": "1000", "current_amount": "400",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("creating goal: status %d, body %s", resp.StatusCode, body)
	}
	var goal goalResponse
	decodeBody(t, body, &goal)

	resp, body = doRequest(t, ts, http.MethodGet, fmt.Sprintf("/api/goals/%d/progress", goal.ID), 1, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("progress: status %d, body %s", resp.StatusCode, body)
	}
	var progress map[string]string
	decodeBody(t, body, &progress)
	if progress["progress"] != "40.00" {
		t.Fatalf("progress = %q, want 40.00", progress["progress"])
	}
}

func TestDashboardEndpoint(t *testing.T) {
	ts := newTestServer(t)
	accountID := createAccountT(t, ts, 1, "Checking")
	salary := createCategoryT(t, ts, 1, "Salary", "income")
	food := createCategoryT(t, ts, 1, "Food", "expense")

	for _, tx := range []map[string]any{
		{"account_id": accountID, "category_id": salary, "type": "income", "amount": "1000", "date": "2025-04-01"},
		{"account_id": accountID, "category_id": food, "type": "expense", "amount": "150", "date": "2025-04-05"},
	} {
		resp, body := doRequest(t, ts, http.MethodPost, "/api/transactions", 1, tx)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("creating transaction: status %d, body %s", resp.StatusCode, body)
		}
	}

	resp, body := doRequest(t, ts, http.MethodGet, "/api/dashboard?now=2025-04-15", 1, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: status %d, body %s", resp.StatusCode, body)
	}
	var dashboard dashboardResponse
	decodeBody(t, body, &dashboard)

	if dashboard.AllTimeSummary.NetSavings != "850.00" {
		t.Fatalf("all-time net savings = %s, want 850.00", dashboard.AllTimeSummary.NetSavings)
	}
	if dashboard.CurrentMonthSummary.TotalExpenses != "150.00" {
		t.Fatalf("current month expenses = %s, want 150.00", dashboard.CurrentMonthSummary.TotalExpenses)
	}
	if len(dashboard.CategorySummary) != 2 {
		t.Fatalf("category summary rows = %d, want 2", len(dashboard.CategorySummary))
	}
	if len(dashboard.MonthlyHistory) != 1 || dashboard.MonthlyHistory[0].Month != "2025-04" {
		t.Fatalf("unexpected monthly history: %+v", dashboard.MonthlyHistory)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, _ := doRequest(t, ts, http.MethodGet, path, 0, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
	}
}
