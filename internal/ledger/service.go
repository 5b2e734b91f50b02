// Package ledger is the only write path for transactions. Every operation
// keeps the invariant that an account's balance equals the summed effect of
// the transactions linked to it, by pairing the transaction write with the
// balance adjustment inside one store transaction.
package ledger

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Service struct {
	repo   *storage.Repository
	events *amqp.Client
}

// New creates the service. events may be nil; publication is then skipped.
func New(repo *storage.Repository, events *amqp.Client) *Service {
	return &Service{repo: repo, events: events}
}

// CreateInput fully specifies a new transaction. AccountID is optional; an
// unlinked transaction affects no balance. Currency, when empty, is inherited
// from the linked account at creation time and frozen thereafter.
type CreateInput struct {
	UserID      int64
	AccountID   *int64
	CategoryID  int64
	Type        core.TransactionType
	Amount      decimal.Decimal
	Currency    core.Currency
	Description string
	Date        core.Date
}

func (s *Service) Create(ctx context.Context, in CreateInput) (core.Transaction, error) {
	t := core.Transaction{
		UserID:      in.UserID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: core.SanitizeDescription(in.Description),
		Date:        in.Date,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	var created core.Transaction
	err := s.repo.WithTx(ctx, func(q *storage.Queries) error {
		if _, err := q.GetCategory(ctx, t.UserID, t.CategoryID); err != nil {
			return err
		}
		if t.AccountID != nil {
			account, err := q.GetAccount(ctx, t.UserID, *t.AccountID)
			if err != nil {
				return err
			}
			if t.Currency == "" {
				t.Currency = account.Currency
			}
		}

		var err error
		created, err = q.InsertTransaction(ctx, t)
		if err != nil {
			return err
		}
		if created.AccountID != nil {
			return q.AdjustBalance(ctx, *created.AccountID, core.Cents(created.Effect()))
		}
		return nil
	})
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, amqp.EventTransactionCreated, created.ID)
	return created, nil
}

// UpdateInput is a partial field set; nil fields keep their current value.
// ClearAccount unlinks the transaction (AccountID must then be nil).
type UpdateInput struct {
	AccountID    *int64
	ClearAccount bool
	CategoryID   *int64
	Type         *core.TransactionType
	Amount       *decimal.Decimal
	Description  *string
	Date         *core.Date
}

// Update edits a transaction while keeping every touched balance correct: the
// previous effect is reversed on the old account and the new effect applied to
// the new one, all inside a single store transaction. Moving between accounts
// is just the case where those are two different accounts.
func (s *Service) Update(ctx context.Context, userID, id int64, in UpdateInput) (core.Transaction, error) {
	var updated core.Transaction
	err := s.repo.WithTx(ctx, func(q *storage.Queries) error {
		old, err := q.GetTransaction(ctx, userID, id)
		if err != nil {
			return err
		}

		updated = old
		switch {
		case in.ClearAccount:
			updated.AccountID = nil
		case in.AccountID != nil:
			if _, err := q.GetAccount(ctx, userID, *in.AccountID); err != nil {
				return err
			}
			updated.AccountID = in.AccountID
		}
		if in.CategoryID != nil {
			if _, err := q.GetCategory(ctx, userID, *in.CategoryID); err != nil {
				return err
			}
			updated.CategoryID = *in.CategoryID
		}
		if in.Type != nil {
			updated.Type = *in.Type
		}
		if in.Amount != nil {
			updated.Amount = *in.Amount
		}
		if in.Description != nil {
			updated.Description = core.SanitizeDescription(*in.Description)
		}
		if in.Date != nil {
			updated.Date = *in.Date
		}
		if err := updated.Validate(); err != nil {
			return err
		}

		adjustments := make(map[int64]int64)
		if old.AccountID != nil {
			adjustments[*old.AccountID] -= core.Cents(old.Effect())
		}
		if updated.AccountID != nil {
			adjustments[*updated.AccountID] += core.Cents(updated.Effect())
		}
		if err := applyAdjustments(ctx, q, adjustments); err != nil {
			return err
		}

		return q.UpdateTransaction(ctx, updated)
	})
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, amqp.EventTransactionUpdated, updated.ID)
	return updated, nil
}

// Delete reverses the transaction's effect on its linked account in the same
// store transaction that removes the record.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	err := s.repo.WithTx(ctx, func(q *storage.Queries) error {
		old, err := q.GetTransaction(ctx, userID, id)
		if err != nil {
			return err
		}
		if old.AccountID != nil {
			if err := q.AdjustBalance(ctx, *old.AccountID, -core.Cents(old.Effect())); err != nil {
				return err
			}
		}
		return q.DeleteTransaction(ctx, userID, id)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, amqp.EventTransactionDeleted, id)
	return nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (core.Transaction, error) {
	return s.repo.Queries().GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int64, f storage.TransactionFilter) ([]core.Transaction, error) {
	return s.repo.Queries().ListTransactions(ctx, userID, f)
}

// applyAdjustments writes non-zero balance deltas in ascending account id
// order, the fixed lock order for updates touching two accounts.
func applyAdjustments(ctx context.Context, q *storage.Queries, adjustments map[int64]int64) error {
	ids := make([]int64, 0, len(adjustments))
	for id, delta := range adjustments {
		if delta != 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := q.AdjustBalance(ctx, id, adjustments[id]); err != nil {
			return err
		}
	}
	return nil
}

// publish emits a transaction event after commit. Event delivery is best
// effort; a publish failure never fails the completed operation.
func (s *Service) publish(ctx context.Context, event string, txID int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionEvent(ctx, event, txID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"event", event, "transaction_id", txID, "error", err)
	}
}
