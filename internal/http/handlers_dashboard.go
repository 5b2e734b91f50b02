package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/reports"
)

type summaryResponse struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	NetSavings    string `json:"net_savings"`
}

type categoryRowResponse struct {
	CategoryID  int64  `json:"category_id"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Expenditure string `json:"expenditure"`
	Budget      string `json:"budget"`
	Balance     string `json:"balance"`
	HasBudget   bool   `json:"has_budget"`
	Status      string `json:"status"`
}

type monthRowResponse struct {
	Month    string `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Savings  string `json:"savings"`
}

type dashboardResponse struct {
	AllTimeSummary      summaryResponse       `json:"all_time_summary"`
	CurrentMonthSummary summaryResponse       `json:"current_month_summary"`
	CategorySummary     []categoryRowResponse `json:"category_summary"`
	MonthlyHistory      []monthRowResponse    `json:"monthly_history"`
}

func toSummaryResponse(s reports.Summary) summaryResponse {
	return summaryResponse{
		TotalIncome:   core.FormatAmount(s.TotalIncome),
		TotalExpenses: core.FormatAmount(s.TotalExpenses),
		NetSavings:    core.FormatAmount(s.NetSavings),
	}
}

func toDashboardResponse(d reports.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		AllTimeSummary:      toSummaryResponse(d.AllTime),
		CurrentMonthSummary: toSummaryResponse(d.CurrentMonth),
		CategorySummary:     make([]categoryRowResponse, 0, len(d.Categories)),
		MonthlyHistory:      make([]monthRowResponse, 0, len(d.MonthlyHistory)),
	}
	for _, row := range d.Categories {
		resp.CategorySummary = append(resp.CategorySummary, categoryRowResponse{
			CategoryID:  row.CategoryID,
			Category:    row.CategoryName,
			Kind:        string(row.Kind),
			Expenditure: core.FormatAmount(row.Expenditure),
			Budget:      core.FormatAmount(row.Budget),
			Balance:     core.FormatAmount(row.Balance),
			HasBudget:   row.HasBudget,
			Status:      row.Status,
		})
	}
	for _, row := range d.MonthlyHistory {
		resp.MonthlyHistory = append(resp.MonthlyHistory, monthRowResponse{
			Month:    row.Month.String(),
			Income:   core.FormatAmount(row.Income),
			Expenses: core.FormatAmount(row.Expenses),
			Savings:  core.FormatAmount(row.Savings),
		})
	}
	return resp
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}

	// "Current month" is server-local unless the caller pins it, which the
	// tests and backfill tooling do.
	now := time.Now()
	if raw := r.URL.Query().Get("now"); raw != "" {
		pinned, err := core.ParseDate(raw)
		if err != nil {
			respondBadRequest(w, "invalid now parameter, want YYYY-MM-DD")
			return
		}
		now = pinned.Time
	}

	dashboard, err := s.svc.Reports.Dashboard(r.Context(), userID, now)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDashboardResponse(dashboard))
}
