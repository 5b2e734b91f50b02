package reports

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/budgets"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/storage"
)

const userID = int64(1)

type fixture struct {
	repo    *storage.Repository
	ledger  *ledger.Service
	budgets *budgets.Service
	reports *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return &fixture{
		repo:    repo,
		ledger:  ledger.New(repo, nil),
		budgets: budgets.New(repo),
		reports: New(repo),
	}
}

func (f *fixture) category(t *testing.T, name string, kind core.CategoryKind) core.Category {
	t.Helper()
	c, err := f.repo.Queries().CreateCategory(context.Background(), core.Category{
		UserID: userID, Name: name, Kind: kind,
	})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func (f *fixture) transaction(t *testing.T, categoryID int64, typ core.TransactionType, amount string, date core.Date) {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.ledger.Create(context.Background(), ledger.CreateInput{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       typ,
		Amount:     amt,
		Date:       date,
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func eq(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	w, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(w) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

var april15 = time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)

func TestAllTimeAndCurrentMonthSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	salary := f.category(t, "Salary", core.KindIncome)
	food := f.category(t, "Food", core.KindExpense)

	f.transaction(t, salary.ID, core.TypeIncome, "1000", core.NewDate(2024, time.March, 1))
	f.transaction(t, food.ID, core.TypeExpense, "250.50", core.NewDate(2024, time.March, 20))
	f.transaction(t, salary.ID, core.TypeIncome, "500", core.NewDate(2024, time.April, 2))
	f.transaction(t, food.ID, core.TypeExpense, "99.99", core.NewDate(2024, time.April, 10))

	allTime, err := f.reports.AllTime(ctx, userID)
	if err != nil {
		t.Fatalf("all time: %v", err)
	}
	eq(t, allTime.TotalIncome, "1500")
	eq(t, allTime.TotalExpenses, "350.49")
	eq(t, allTime.NetSavings, "1149.51")

	month, err := f.reports.CurrentMonth(ctx, userID, april15)
	if err != nil {
		t.Fatalf("current month: %v", err)
	}
	eq(t, month.TotalIncome, "500")
	eq(t, month.TotalExpenses, "99.99")
	eq(t, month.NetSavings, "400.01")
}

func TestSummariesOnEmptyDataYieldZeros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.reports.Dashboard(ctx, userID, april15)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	eq(t, d.AllTime.TotalIncome, "0")
	eq(t, d.AllTime.TotalExpenses, "0")
	eq(t, d.AllTime.NetSavings, "0")
	if len(d.Categories) != 0 {
		t.Fatalf("categories = %v, want empty", d.Categories)
	}
	if len(d.MonthlyHistory) != 0 {
		t.Fatalf("history = %v, want empty", d.MonthlyHistory)
	}
}

func TestMonthlyHistoryZeroFills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	salary := f.category(t, "Salary", core.KindIncome)
	food := f.category(t, "Food", core.KindExpense)

	f.transaction(t, food.ID, core.TypeExpense, "30", core.NewDate(2024, time.March, 12))
	f.transaction(t, salary.ID, core.TypeIncome, "200", core.NewDate(2024, time.April, 3))

	rows, err := f.reports.MonthlyHistory(ctx, userID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	march := rows[0]
	if march.Month.String() != "2024-03" {
		t.Fatalf("row 0 month = %s, want 2024-03", march.Month)
	}
	eq(t, march.Income, "0")
	eq(t, march.Expenses, "30")
	eq(t, march.Savings, "-30")

	april := rows[1]
	if april.Month.String() != "2024-04" {
		t.Fatalf("row 1 month = %s, want 2024-04", april.Month)
	}
	eq(t, april.Income, "200")
	eq(t, april.Expenses, "0")
	eq(t, april.Savings, "200")
}

func TestCategorySummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.category(t, "Food", core.KindExpense)
	transport := f.category(t, "Transport", core.KindExpense)
	_ = f.category(t, "Unused", core.KindExpense)

	f.transaction(t, food.ID, core.TypeExpense, "120", core.NewDate(2024, time.April, 5))
	f.transaction(t, transport.ID, core.TypeExpense, "45", core.NewDate(2024, time.April, 6))
	// Outside the current month, must not count.
	f.transaction(t, food.ID, core.TypeExpense, "999", core.NewDate(2024, time.March, 5))

	if _, err := f.budgets.Create(ctx, budgets.Input{
		UserID:     userID,
		CategoryID: food.ID,
		Month:      core.MonthOf(april15),
		Amount:     decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	rows, err := f.reports.CategorySummary(ctx, userID, april15)
	if err != nil {
		t.Fatalf("category summary: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want one per category", len(rows))
	}

	byName := make(map[string]CategoryRow)
	for _, r := range rows {
		byName[r.CategoryName] = r
	}

	overspent := byName["Food"]
	eq(t, overspent.Expenditure, "120")
	eq(t, overspent.Budget, "100")
	eq(t, overspent.Balance, "-20")
	if overspent.Status != StatusExceeded {
		t.Fatalf("status = %q, want %q", overspent.Status, StatusExceeded)
	}

	unbudgeted := byName["Transport"]
	eq(t, unbudgeted.Expenditure, "45")
	eq(t, unbudgeted.Budget, "0")
	eq(t, unbudgeted.Balance, "-45")
	if unbudgeted.Status != StatusOK {
		t.Fatalf("status = %q, want %q", unbudgeted.Status, StatusOK)
	}

	untouched := byName["Unused"]
	eq(t, untouched.Expenditure, "0")
	eq(t, untouched.Budget, "0")
	eq(t, untouched.Balance, "0")
	if untouched.Status != StatusOK {
		t.Fatalf("status = %q, want %q", untouched.Status, StatusOK)
	}
}

func TestDashboardIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	salary := f.category(t, "Salary", core.KindIncome)
	f.transaction(t, salary.ID, core.TypeIncome, "808.80", core.NewDate(2024, time.April, 1))

	first, err := f.reports.Dashboard(ctx, userID, april15)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	second, err := f.reports.Dashboard(ctx, userID, april15)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("dashboards differ:\n%+v\n%+v", first, second)
	}
}
