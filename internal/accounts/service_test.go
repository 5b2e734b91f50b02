package accounts

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

func TestCreateAccountDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	a, err := svc.Create(context.Background(), core.Account{
		UserID: userID,
		Name:   "Wallet",
		Type:   core.AccountCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Currency != core.DefaultCurrency {
		t.Fatalf("currency = %q, want %q", a.Currency, core.DefaultCurrency)
	}
	if !a.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0", a.Balance)
	}
}

func TestAccountNameUniquePerOwnerCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.Account{
		UserID: userID, Name: "Savings", Type: core.AccountBank,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, core.Account{
		UserID: userID, Name: "SAVINGS", Type: core.AccountBank,
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}

	// The same name under another owner is allowed.
	if _, err := svc.Create(ctx, core.Account{
		UserID: 2, Name: "Savings", Type: core.AccountBank,
	}); err != nil {
		t.Fatalf("other owner: %v", err)
	}
}

func TestDeleteAccountCascadesTransactions(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	led := ledger.New(repo, nil)

	a, err := svc.Create(ctx, core.Account{UserID: userID, Name: "Wallet", Type: core.AccountCash})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	c, err := repo.Queries().CreateCategory(ctx, core.Category{
		UserID: userID, Name: "Food", Kind: core.KindExpense,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	tx, err := led.Create(ctx, ledger.CreateInput{
		UserID:     userID,
		AccountID:  &a.ID,
		CategoryID: c.ID,
		Type:       core.TypeExpense,
		Amount:     decimal.NewFromInt(10),
		Date:       core.NewDate(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := svc.Delete(ctx, userID, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, userID, a.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("account should be gone, got %v", err)
	}
	if _, err := led.Get(ctx, userID, tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("linked transaction should be gone, got %v", err)
	}
}

func TestDeleteMissingAccount(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Delete(context.Background(), userID, 404); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
