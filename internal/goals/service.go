// Package goals tracks savings targets. Progress is a pure derivation; the
// only guarded case is a zero target.
package goals

import (
	"context"

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

func (s *Service) Create(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	return s.repo.Queries().InsertGoal(ctx, g)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (core.Goal, error) {
	return s.repo.Queries().GetGoal(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int64) ([]core.Goal, error) {
	return s.repo.Queries().ListGoals(ctx, userID)
}

func (s *Service) Update(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := s.repo.Queries().UpdateGoal(ctx, g); err != nil {
		return core.Goal{}, err
	}
	return s.repo.Queries().GetGoal(ctx, g.UserID, g.ID)
}

// Progress returns the goal's completion percentage in [0, 100].
func (s *Service) Progress(ctx context.Context, userID, id int64) (decimal.Decimal, error) {
	g, err := s.repo.Queries().GetGoal(ctx, userID, id)
	if err != nil {
		return decimal.Zero, err
	}
	return g.Progress(), nil
}
