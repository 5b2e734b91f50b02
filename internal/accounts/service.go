// Package accounts manages the account catalog. Balances are read-only here;
// only the ledger service writes them.
package accounts

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Service struct {
	repo *storage.Repository
}

func New(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

// Create opens an account with a zero balance. Names are unique per owner,
// case-insensitively; the check shares a transaction with the insert and the
// schema's collated unique index backs it up.
func (s *Service) Create(ctx context.Context, a core.Account) (core.Account, error) {
	if a.Currency == "" {
		a.Currency = core.DefaultCurrency
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}

	var created core.Account
	err := s.repo.WithTx(ctx, func(q *storage.Queries) error {
		taken, err := q.AccountNameExists(ctx, a.UserID, a.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return core.ErrNameTaken
		}
		created, err = q.CreateAccount(ctx, a)
		return err
	})
	if err != nil {
		return core.Account{}, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (core.Account, error) {
	return s.repo.Queries().GetAccount(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int64) ([]core.Account, error) {
	return s.repo.Queries().ListAccounts(ctx, userID)
}

// Delete removes the account and, through the schema's cascade, every
// transaction linked to it. The balance disappears with the account, so no
// reversal is involved.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.WithTx(ctx, func(q *storage.Queries) error {
		return q.DeleteAccount(ctx, userID, id)
	})
}
