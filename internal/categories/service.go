// Package categories manages the income/expense labels transactions and
// budgets reference.
package categories

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Service struct {
	repo *storage.Repository
}

func New(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	return s.repo.Queries().CreateCategory(ctx, c)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (core.Category, error) {
	return s.repo.Queries().GetCategory(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int64) ([]core.Category, error) {
	return s.repo.Queries().ListCategories(ctx, userID)
}

// Delete removes a category that no transaction references. Cascading the
// delete into transactions would silently break account balances, so a
// referenced category is rejected instead. Budgets for the category are
// removed by the schema's cascade.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.WithTx(ctx, func(q *storage.Queries) error {
		if _, err := q.GetCategory(ctx, userID, id); err != nil {
			return err
		}
		used, err := q.CategoryHasTransactions(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: category has transactions", core.ErrValidation)
		}
		return q.DeleteCategory(ctx, userID, id)
	})
}
