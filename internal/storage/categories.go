package storage

import (
	"context"
	"database/sql"

	"fintrack/internal/core"
)

func (q *Queries) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, kind, created_at)
		VALUES (?, ?, ?, ?)`,
		c.UserID, c.Name, string(c.Kind), nowString())
	if err != nil {
		return core.Category{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, mapError(err)
	}
	return q.GetCategory(ctx, c.UserID, id)
}

func (q *Queries) GetCategory(ctx context.Context, userID, id int64) (core.Category, error) {
	var (
		c         core.Category
		createdAt string
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, kind, created_at FROM categories
		WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &createdAt)
	if err != nil {
		return core.Category{}, mapError(err)
	}
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}

func (q *Queries) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, user_id, name, kind, created_at FROM categories
		WHERE user_id = ? ORDER BY name, id`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var (
			c         core.Category
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &createdAt); err != nil {
			return nil, mapError(err)
		}
		c.CreatedAt = parseTime(createdAt)
		categories = append(categories, c)
	}
	return categories, mapError(rows.Err())
}

func (q *Queries) CategoryHasTransactions(ctx context.Context, categoryID int64) (bool, error) {
	var one int
	err := q.db.QueryRowContext(ctx,
		"SELECT 1 FROM transactions WHERE category_id = ? LIMIT 1", categoryID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapError(err)
	}
	return true, nil
}

func (q *Queries) DeleteCategory(ctx context.Context, userID, id int64) error {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
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
