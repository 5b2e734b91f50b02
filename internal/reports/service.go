// Package reports derives the read-side financial views. Every call
// recomputes from the current store; nothing is cached and no state is
// mutated, so results are only as stale as the last committed write.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

const (
	StatusOK       = "OK"
	StatusExceeded = "Exceeded"
)

type Service struct {
	repo *storage.Repository
}

func New(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

// Summary is the income/expense/net triple for one scope. Missing data yields
// zeros, never an error.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetSavings    decimal.Decimal
}

func summaryFromTotals(t storage.Totals) Summary {
	income := core.FromCents(t.IncomeCents)
	expenses := core.FromCents(t.ExpenseCents)
	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetSavings:    income.Sub(expenses),
	}
}

// CategoryRow is one category's budget-vs-actual line for the current month.
// Every owned category gets a row, with or without activity.
type CategoryRow struct {
	CategoryID   int64
	CategoryName string
	Kind         core.CategoryKind
	Expenditure  decimal.Decimal
	Budget       decimal.Decimal
	Balance      decimal.Decimal
	HasBudget    bool
	Status       string
}

// MonthRow is one calendar month of history, both sides zero-initialized
// before accumulation.
type MonthRow struct {
	Month    core.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
}

// Dashboard bundles the four report views.
type Dashboard struct {
	AllTime        Summary
	CurrentMonth   Summary
	Categories     []CategoryRow
	MonthlyHistory []MonthRow
}

func (s *Service) AllTime(ctx context.Context, userID int64) (Summary, error) {
	totals, err := s.repo.Queries().TotalsAllTime(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return summaryFromTotals(totals), nil
}

// CurrentMonth summarizes transactions dated inside the calendar month
// containing now.
func (s *Service) CurrentMonth(ctx context.Context, userID int64, now time.Time) (Summary, error) {
	month := core.MonthOf(now)
	totals, err := s.repo.Queries().TotalsBetween(ctx, userID, month.Key(), month.Next().Key())
	if err != nil {
		return Summary{}, err
	}
	return summaryFromTotals(totals), nil
}

// CategorySummary emits one row per owned category: current-month expenditure
// against the category's budget for that month, if any.
func (s *Service) CategorySummary(ctx context.Context, userID int64, now time.Time) ([]CategoryRow, error) {
	month := core.MonthOf(now)
	q := s.repo.Queries()

	categories, err := q.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	spent, err := q.ExpensesByCategory(ctx, userID, month.Key(), month.Next().Key())
	if err != nil {
		return nil, err
	}
	budgets, err := q.BudgetsForMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	rows := make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		row := CategoryRow{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Kind:         c.Kind,
			Expenditure:  core.FromCents(spent[c.ID]),
			Budget:       decimal.Zero,
			Status:       StatusOK,
		}
		if b, ok := budgets[c.ID]; ok {
			row.HasBudget = true
			row.Budget = b.Amount
			if row.Expenditure.GreaterThan(b.Amount) {
				row.Status = StatusExceeded
			}
		}
		row.Balance = row.Budget.Sub(row.Expenditure)
		rows = append(rows, row)
	}
	return rows, nil
}

// MonthlyHistory groups all of the user's transactions by calendar month,
// ascending. The grouping query yields at most one side per row, so each
// month starts from explicit zeros; a month with only income reports zero
// expenses and vice versa.
func (s *Service) MonthlyHistory(ctx context.Context, userID int64) ([]MonthRow, error) {
	totals, err := s.repo.Queries().MonthlyTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []MonthRow
	for _, t := range totals {
		month, err := core.ParseMonth(t.Month)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 || rows[len(rows)-1].Month != month {
			rows = append(rows, MonthRow{
				Month:    month,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			})
		}
		row := &rows[len(rows)-1]
		switch t.Type {
		case string(core.TypeIncome):
			row.Income = core.FromCents(t.Cents)
		case string(core.TypeExpense):
			row.Expenses = core.FromCents(t.Cents)
		}
	}
	for i := range rows {
		rows[i].Savings = rows[i].Income.Sub(rows[i].Expenses)
	}
	return rows, nil
}

// Dashboard assembles all four views, running the queries concurrently. Each
// view reads its own snapshot; a write committing mid-call is either fully
// visible to a view or not at all.
func (s *Service) Dashboard(ctx context.Context, userID int64, now time.Time) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		d.AllTime, err = s.AllTime(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		d.CurrentMonth, err = s.CurrentMonth(ctx, userID, now)
		return err
	})
	g.Go(func() error {
		var err error
		d.Categories, err = s.CategorySummary(ctx, userID, now)
		return err
	})
	g.Go(func() error {
		var err error
		d.MonthlyHistory, err = s.MonthlyHistory(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
