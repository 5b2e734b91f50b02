package storage

import (
	"context"
	"database/sql"

	"fintrack/internal/core"
)

const accountColumns = "id, user_id, name, account_type, currency, balance_cents, created_at, updated_at"

func scanAccount(row interface{ Scan(...any) error }) (core.Account, error) {
	var (
		a         core.Account
		ccy       string
		cents     int64
		createdAt string
		updatedAt string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &ccy, &cents, &createdAt, &updatedAt)
	if err != nil {
		return core.Account{}, err
	}
	a.Currency = core.Currency(ccy)
	a.Balance = core.FromCents(cents)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return a, nil
}

func (q *Queries) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	now := nowString()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO accounts (user_id, name, account_type, currency, balance_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		a.UserID, a.Name, string(a.Type), string(a.Currency), now, now)
	if err != nil {
		return core.Account{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Account{}, mapError(err)
	}
	return q.GetAccount(ctx, a.UserID, id)
}

func (q *Queries) GetAccount(ctx context.Context, userID, id int64) (core.Account, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ? AND user_id = ?", id, userID)
	a, err := scanAccount(row)
	if err != nil {
		return core.Account{}, mapError(err)
	}
	return a, nil
}

func (q *Queries) ListAccounts(ctx context.Context, userID int64) ([]core.Account, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err)
		}
		accounts = append(accounts, a)
	}
	return accounts, mapError(rows.Err())
}

func (q *Queries) DeleteAccount(ctx context.Context, userID, id int64) error {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM accounts WHERE id = ? AND user_id = ?", id, userID)
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

// AccountNameExists reports whether the owner already has an account with this
// name, comparing case-insensitively. excludeID skips the record being
// updated; pass 0 on create.
func (q *Queries) AccountNameExists(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	var one int
	err := q.db.QueryRowContext(ctx, `
		SELECT 1 FROM accounts
		WHERE user_id = ? AND name = ? COLLATE NOCASE AND id != ?
		LIMIT 1`,
		userID, name, excludeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapError(err)
	}
	return true, nil
}

// AdjustBalance applies a signed delta, in cents, to an account's balance.
// Only the ledger service calls this, inside the transaction that also writes
// the triggering transaction row.
func (q *Queries) AdjustBalance(ctx context.Context, accountID, deltaCents int64) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE accounts SET balance_cents = balance_cents + ?, updated_at = ?
		WHERE id = ?`,
		deltaCents, nowString(), accountID)
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
