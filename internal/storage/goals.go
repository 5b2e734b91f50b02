package storage

import (
	"context"
	"database/sql"

	"fintrack/internal/core"
)

const goalColumns = "id, user_id, name, target_cents, current_cents, deadline, created_at"

func scanGoal(row interface{ Scan(...any) error }) (core.Goal, error) {
	var (
		g            core.Goal
		targetCents  int64
		currentCents int64
		deadline     sql.NullString
		createdAt    string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &targetCents, &currentCents, &deadline, &createdAt)
	if err != nil {
		return core.Goal{}, err
	}
	g.Target = core.FromCents(targetCents)
	g.Current = core.FromCents(currentCents)
	if deadline.Valid && deadline.String != "" {
		d, err := core.ParseDate(deadline.String)
		if err != nil {
			return core.Goal{}, err
		}
		g.Deadline = &d
	}
	g.CreatedAt = parseTime(createdAt)
	return g, nil
}

func nullableDate(d *core.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func (q *Queries) InsertGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO goals (user_id, name, target_cents, current_cents, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Name, core.Cents(g.Target), core.Cents(g.Current),
		nullableDate(g.Deadline), nowString())
	if err != nil {
		return core.Goal{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Goal{}, mapError(err)
	}
	return q.GetGoal(ctx, g.UserID, id)
}

func (q *Queries) GetGoal(ctx context.Context, userID, id int64) (core.Goal, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?", id, userID)
	g, err := scanGoal(row)
	if err != nil {
		return core.Goal{}, mapError(err)
	}
	return g, nil
}

func (q *Queries) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE goals SET name = ?, target_cents = ?, current_cents = ?, deadline = ?
		WHERE id = ? AND user_id = ?`,
		g.Name, core.Cents(g.Target), core.Cents(g.Current), nullableDate(g.Deadline),
		g.ID, g.UserID)
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

func (q *Queries) ListGoals(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, mapError(err)
		}
		goals = append(goals, g)
	}
	return goals, mapError(rows.Err())
}
