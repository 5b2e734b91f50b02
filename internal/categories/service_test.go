package categories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/storage"
)

const userID = int64(1)

func newTestService(t *testing.T) (*Service, *storage.Repository) {
	t.Helper()
	repo, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return New(repo), repo
}

func TestCategoryCreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.Category{UserID: userID, Name: "Salary", Kind: core.KindIncome}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, core.Category{UserID: userID, Name: "Food", Kind: core.KindExpense}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d categories, want 2", len(list))
	}
	if list[0].Name != "Food" {
		t.Fatalf("list should be name-ordered, got %q first", list[0].Name)
	}
}

func TestCategoryCreateInvalidKind(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), core.Category{UserID: userID, Name: "X", Kind: "transfer"})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDeleteReferencedCategoryRejected(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, core.Category{UserID: userID, Name: "Food", Kind: core.KindExpense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	led := ledger.New(repo, nil)
	if _, err := led.Create(ctx, ledger.CreateInput{
		UserID:     userID,
		CategoryID: c.ID,
		Type:       core.TypeExpense,
		Amount:     decimal.NewFromInt(5),
		Date:       core.NewDate(2024, time.March, 1),
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := svc.Delete(ctx, userID, c.ID); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}

	// Still present.
	if _, err := svc.Get(ctx, userID, c.ID); err != nil {
		t.Fatalf("category should survive: %v", err)
	}
}

func TestDeleteUnreferencedCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, core.Category{UserID: userID, Name: "Idle", Kind: core.KindExpense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, userID, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, userID, c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("category should be gone, got %v", err)
	}
}
