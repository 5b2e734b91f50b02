package storage

import (
	"context"
	"fmt"
)

// Totals holds summed income and expense cents for one scope. The grouping
// query yields at most one row per type, so callers get zeros for a type with
// no transactions.
type Totals struct {
	IncomeCents  int64
	ExpenseCents int64
}

func (q *Queries) scanTotals(ctx context.Context, query string, args ...any) (Totals, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Totals{}, mapError(err)
	}
	defer rows.Close()

	var t Totals
	for rows.Next() {
		var (
			txType string
			cents  int64
		)
		if err := rows.Scan(&txType, &cents); err != nil {
			return Totals{}, mapError(err)
		}
		switch txType {
		case "income":
			t.IncomeCents = cents
		case "expense":
			t.ExpenseCents = cents
		default:
			return Totals{}, fmt.Errorf("unexpected transaction type %q", txType)
		}
	}
	return t, mapError(rows.Err())
}

func (q *Queries) TotalsAllTime(ctx context.Context, userID int64) (Totals, error) {
	return q.scanTotals(ctx, `
		SELECT tx_type, COALESCE(SUM(amount_cents), 0)
		FROM transactions WHERE user_id = ?
		GROUP BY tx_type`, userID)
}

// TotalsBetween sums per type over tx_date in [from, to), both YYYY-MM-DD.
func (q *Queries) TotalsBetween(ctx context.Context, userID int64, from, to string) (Totals, error) {
	return q.scanTotals(ctx, `
		SELECT tx_type, COALESCE(SUM(amount_cents), 0)
		FROM transactions WHERE user_id = ? AND tx_date >= ? AND tx_date < ?
		GROUP BY tx_type`, userID, from, to)
}

// ExpensesByCategory sums expense cents per category over tx_date in [from, to).
// Categories with no expenses in range are absent from the map.
func (q *Queries) ExpensesByCategory(ctx context.Context, userID int64, from, to string) (map[int64]int64, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT category_id, COALESCE(SUM(amount_cents), 0)
		FROM transactions
		WHERE user_id = ? AND tx_type = 'expense' AND tx_date >= ? AND tx_date < ?
		GROUP BY category_id`, userID, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	sums := make(map[int64]int64)
	for rows.Next() {
		var (
			categoryID int64
			cents      int64
		)
		if err := rows.Scan(&categoryID, &cents); err != nil {
			return nil, mapError(err)
		}
		sums[categoryID] = cents
	}
	return sums, mapError(rows.Err())
}

// MonthlyTotalRow is one (month, type) sum from the monthly grouping query.
type MonthlyTotalRow struct {
	Month string // YYYY-MM
	Type  string
	Cents int64
}

// MonthlyTotals groups all of the user's transactions by calendar month and
// type, months ascending.
func (q *Queries) MonthlyTotals(ctx context.Context, userID int64) ([]MonthlyTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT substr(tx_date, 1, 7) AS month, tx_type, COALESCE(SUM(amount_cents), 0)
		FROM transactions WHERE user_id = ?
		GROUP BY month, tx_type
		ORDER BY month`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var totals []MonthlyTotalRow
	for rows.Next() {
		var r MonthlyTotalRow
		if err := rows.Scan(&r.Month, &r.Type, &r.Cents); err != nil {
			return nil, mapError(err)
		}
		totals = append(totals, r)
	}
	return totals, mapError(rows.Err())
}
