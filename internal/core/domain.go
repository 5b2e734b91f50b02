package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type (
	AccountType     string
	Currency        string
	CategoryKind    string
	TransactionType string
)

const (
	AccountCash        AccountType = "cash"
	AccountBank        AccountType = "bank"
	AccountMobileMoney AccountType = "mobile_money"
	AccountCreditCard  AccountType = "credit_card"
	AccountOther       AccountType = "other"
)

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// DefaultCurrency is applied to accounts created without an explicit currency.
const DefaultCurrency Currency = "KES"

var currencies = map[Currency]struct{}{
	"KES": {}, "USD": {}, "EUR": {}, "GBP": {}, "CNY": {}, "JPY": {},
	"CAD": {}, "AUD": {}, "INR": {}, "ZAR": {}, "UGX": {}, "TZS": {},
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountBank, AccountMobileMoney, AccountCreditCard, AccountOther:
		return true
	}
	return false
}

func (c Currency) Valid() bool {
	_, ok := currencies[c]
	return ok
}

func (k CategoryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Account is a container of money owned by one user. Balance is derived: it
// always equals the summed effect of the transactions linked to the account
// and is only ever written by the ledger service.
type Account struct {
	ID        int64
	UserID    int64
	Name      string
	Type      AccountType
	Currency  Currency
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}
	if !a.Currency.Valid() {
		return ErrInvalidCurrency
	}
	return nil
}

// Category labels transactions as income or expense groupings. The kind drives
// report grouping; a transaction's balance effect comes from its own type.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	Kind      CategoryKind
	CreatedAt time.Time
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

// Transaction is the system of record every derived figure is computed from.
// AccountID is nil for unlinked transactions, which affect no balance.
// Currency is inherited from the account once, at creation, and never
// re-derived afterward.
type Transaction struct {
	ID          int64
	UserID      int64
	AccountID   *int64
	CategoryID  int64
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    Currency
	Description string
	Date        Date
	CreatedAt   time.Time
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Currency != "" && !t.Currency.Valid() {
		return ErrInvalidCurrency
	}
	return nil
}

// Effect is the signed contribution the transaction makes to its linked
// account's balance. Amount is stored as a positive magnitude; the sign is
// derived from the type here, never cached.
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Budget caps spending for one category in one calendar month. At most one
// budget may exist per (user, category, month).
type Budget struct {
	ID         int64
	UserID     int64
	CategoryID int64
	Month      Month
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

func (b Budget) Validate() error {
	if b.Month.IsZero() {
		return ErrInvalidDate
	}
	if b.Amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Goal is a savings target with trivially derived progress.
type Goal struct {
	ID        int64
	UserID    int64
	Name      string
	Target    decimal.Decimal
	Current   decimal.Decimal
	Deadline  *Date
	CreatedAt time.Time
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Target.Sign() < 0 || g.Current.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// Progress returns the completion percentage in [0, 100]. A zero target yields
// zero rather than dividing by it.
func (g Goal) Progress() decimal.Decimal {
	if g.Target.Sign() <= 0 {
		return decimal.Zero
	}
	p := g.Current.Div(g.Target).Mul(hundred).Round(2)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
