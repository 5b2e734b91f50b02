package storage

import (
	"context"
	"database/sql"

	"fintrack/internal/core"
)

const transactionColumns = "id, user_id, account_id, category_id, tx_type, amount_cents, currency, description, tx_date, created_at"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t         core.Transaction
		accountID sql.NullInt64
		cents     int64
		ccy       sql.NullString
		txDate    string
		createdAt string
	)
	err := row.Scan(&t.ID, &t.UserID, &accountID, &t.CategoryID, &t.Type,
		&cents, &ccy, &t.Description, &txDate, &createdAt)
	if err != nil {
		return core.Transaction{}, err
	}
	if accountID.Valid {
		id := accountID.Int64
		t.AccountID = &id
	}
	t.Amount = core.FromCents(cents)
	if ccy.Valid {
		t.Currency = core.Currency(ccy.String)
	}
	d, err := core.ParseDate(txDate)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Date = d
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableCurrency(c core.Currency) any {
	if c == "" {
		return nil
	}
	return string(c)
}

func (q *Queries) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, account_id, category_id, tx_type, amount_cents, currency, description, tx_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, nullableID(t.AccountID), t.CategoryID, string(t.Type),
		core.Cents(t.Amount), nullableCurrency(t.Currency), t.Description,
		t.Date.String(), nowString())
	if err != nil {
		return core.Transaction{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, mapError(err)
	}
	return q.GetTransaction(ctx, t.UserID, id)
}

func (q *Queries) GetTransaction(ctx context.Context, userID, id int64) (core.Transaction, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, mapError(err)
	}
	return t, nil
}

// UpdateTransaction persists the mutable fields of t. Currency is written
// as-is: it was frozen at creation and the ledger service never re-derives it.
func (q *Queries) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE transactions
		SET account_id = ?, category_id = ?, tx_type = ?, amount_cents = ?, currency = ?, description = ?, tx_date = ?
		WHERE id = ? AND user_id = ?`,
		nullableID(t.AccountID), t.CategoryID, string(t.Type), core.Cents(t.Amount),
		nullableCurrency(t.Currency), t.Description, t.Date.String(),
		t.ID, t.UserID)
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

func (q *Queries) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
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

// TransactionFilter narrows ListTransactions; nil fields are ignored.
type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
}

func (q *Queries) ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE user_id = ?"
	args := []any{userID}
	if f.AccountID != nil {
		query += " AND account_id = ?"
		args = append(args, *f.AccountID)
	}
	if f.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *f.CategoryID)
	}
	query += " ORDER BY tx_date DESC, id DESC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var transactions []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError(err)
		}
		transactions = append(transactions, t)
	}
	return transactions, mapError(rows.Err())
}
