// Package budgets guards the one-budget-per-(user, category, month) rule.
// The check runs inside the same store transaction as the write, and the
// schema's unique index is the final authority if two writers race anyway.
package budgets

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Service struct {
	repo *storage.Repository
}

func New(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the fields of a budget write. Month is already normalized to
// its calendar-month bucket by construction of core.Month.
type Input struct {
	UserID     int64
	CategoryID int64
	Month      core.Month
	Amount     decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in Input) (core.Budget, error) {
	b := core.Budget{
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
		Month:      in.Month,
		Amount:     in.Amount,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	var created core.Budget
	err := s.repo.WithTx(ctx, func(q *storage.Queries) error {
		if _, err := q.GetCategory(ctx, in.UserID, in.CategoryID); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, q, in, 0); err != nil {
			return err
		}
		var err error
		created, err = q.InsertBudget(ctx, b)
		return err
	})
	if err != nil {
		return core.Budget{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, in Input) (core.Budget, error) {
	var updated core.Budget
	err := s.repo.WithTx(ctx, func(q *storage.Queries) error {
		b, err := q.GetBudget(ctx, userID, id)
		if err != nil {
			return err
		}
		if in.CategoryID != b.CategoryID {
			if _, err := q.GetCategory(ctx, userID, in.CategoryID); err != nil {
				return err
			}
		}
		b.CategoryID = in.CategoryID
		b.Month = in.Month
		b.Amount = in.Amount
		if err := b.Validate(); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, q, in, id); err != nil {
			return err
		}
		if err := q.UpdateBudget(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return core.Budget{}, err
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (core.Budget, error) {
	return s.repo.Queries().GetBudget(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int64) ([]core.Budget, error) {
	return s.repo.Queries().ListBudgets(ctx, userID)
}

// checkUnique rejects a write that would duplicate another budget's
// (user, category, month); excludeID exempts the record being updated.
func (s *Service) checkUnique(ctx context.Context, q *storage.Queries, in Input, excludeID int64) error {
	_, err := q.FindBudget(ctx, in.UserID, in.CategoryID, in.Month, excludeID)
	if err == nil {
		return core.ErrDuplicateBudget
	}
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}
