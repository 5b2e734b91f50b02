package storage

import (
	"context"

	"fintrack/internal/core"
)

const budgetColumns = "id, user_id, category_id, month, amount_cents, created_at"

func scanBudget(row interface{ Scan(...any) error }) (core.Budget, error) {
	var (
		b         core.Budget
		monthKey  string
		cents     int64
		createdAt string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &monthKey, &cents, &createdAt)
	if err != nil {
		return core.Budget{}, err
	}
	m, err := core.ParseMonth(monthKey)
	if err != nil {
		return core.Budget{}, err
	}
	b.Month = m
	b.Amount = core.FromCents(cents)
	b.CreatedAt = parseTime(createdAt)
	return b, nil
}

func (q *Queries) InsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category_id, month, amount_cents, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		b.UserID, b.CategoryID, b.Month.Key(), core.Cents(b.Amount), nowString())
	if err != nil {
		return core.Budget{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, mapError(err)
	}
	return q.GetBudget(ctx, b.UserID, id)
}

func (q *Queries) UpdateBudget(ctx context.Context, b core.Budget) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE budgets SET category_id = ?, month = ?, amount_cents = ?
		WHERE id = ? AND user_id = ?`,
		b.CategoryID, b.Month.Key(), core.Cents(b.Amount), b.ID, b.UserID)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (q *Queries) GetBudget(ctx context.Context, userID, id int64) (core.Budget, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	b, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, mapError(err)
	}
	return b, nil
}

// FindBudget looks up the budget for (user, category, month), excluding
// excludeID so an update does not collide with its own row. Pass 0 on create.
func (q *Queries) FindBudget(ctx context.Context, userID, categoryID int64, month core.Month, excludeID int64) (core.Budget, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = ? AND category_id = ? AND month = ? AND id != ?`,
		userID, categoryID, month.Key(), excludeID)
	b, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, mapError(err)
	}
	return b, nil
}

func (q *Queries) ListBudgets(ctx context.Context, userID int64) ([]core.Budget, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = ? ORDER BY month DESC, id", userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, mapError(err)
		}
		budgets = append(budgets, b)
	}
	return budgets, mapError(rows.Err())
}

// BudgetsForMonth returns the user's budgets for one month keyed by category.
func (q *Queries) BudgetsForMonth(ctx context.Context, userID int64, month core.Month) (map[int64]core.Budget, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE user_id = ? AND month = ?", userID, month.Key())
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	budgets := make(map[int64]core.Budget)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, mapError(err)
		}
		budgets[b.CategoryID] = b
	}
	return budgets, mapError(rows.Err())
}
