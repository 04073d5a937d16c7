package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bank-credit-portal/internal/domain/account"
	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/domain/loan"
	"bank-credit-portal/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ----- test doubles -----

const entID = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

type mockEnterprises struct {
	GetByEnterpriseIDFn func(ctx context.Context, enterpriseID string) (*enterprise.Enterprise, error)
}

func (m *mockEnterprises) Create(ctx context.Context, e *enterprise.Enterprise) error { return nil }
func (m *mockEnterprises) Save(ctx context.Context, e *enterprise.Enterprise) error   { return nil }
func (m *mockEnterprises) Count(ctx context.Context) (int64, error)                   { return 0, nil }
func (m *mockEnterprises) GetByEnterpriseID(ctx context.Context, enterpriseID string) (*enterprise.Enterprise, error) {
	if m.GetByEnterpriseIDFn != nil {
		return m.GetByEnterpriseIDFn(ctx, enterpriseID)
	}
	return &enterprise.Enterprise{ID: 1, EnterpriseID: enterpriseID}, nil
}

// memAccounts implements account.Repository over a single in-memory
// account, staging writes until the fake UoW commits.
type memAccounts struct {
	acct *account.Account
	txs  []account.Transaction
}

func (m *memAccounts) Create(ctx context.Context, a *account.Account) error { return nil }
func (m *memAccounts) GetByEnterpriseID(ctx context.Context, id uint64) (*account.Account, error) {
	cp := *m.acct
	return &cp, nil
}
func (m *memAccounts) GetByEnterpriseIDForUpdate(ctx context.Context, id uint64) (*account.Account, error) {
	cp := *m.acct
	return &cp, nil
}
func (m *memAccounts) Save(ctx context.Context, a *account.Account) error {
	cp := *a
	m.acct = &cp
	return nil
}
func (m *memAccounts) AppendTransaction(ctx context.Context, tr *account.Transaction) error {
	m.txs = append(m.txs, *tr)
	return nil
}
func (m *memAccounts) ListTransactions(ctx context.Context, id uint64, limit int) ([]account.Transaction, error) {
	if limit > len(m.txs) {
		limit = len(m.txs)
	}
	out := make([]account.Transaction, 0, limit)
	for i := len(m.txs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.txs[i])
	}
	return out, nil
}

// fakeUoW serializes account transactions with a mutex (the row lock)
// and discards staged writes when fn fails (the rollback).
type fakeUoW struct {
	mu     sync.Mutex
	store  *memAccounts
	getErr error
}

func (f *fakeUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(uow.Repos{Accounts: f.store})
}

func (f *fakeUoW) WithinAccountTx(ctx context.Context, id uint64, fn func(r uow.Repos, a *account.Account) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	work := *f.store.acct
	staged := &memAccounts{acct: &work}
	if err := fn(uow.Repos{Accounts: staged}, &work); err != nil {
		return err
	}
	f.store.acct = staged.acct
	f.store.txs = append(f.store.txs, staged.txs...)
	return nil
}

func (f *fakeUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	panic("not used in ledger tests")
}

func newFixture(balance string) (*Usecase, *memAccounts) {
	store := &memAccounts{acct: &account.Account{
		ID:           10,
		EnterpriseID: 1,
		AccountNo:    "6222000000000001",
		Balance:      decimal.RequireFromString(balance),
	}}
	u := NewUsecase(&mockEnterprises{}, store, &fakeUoW{store: store})
	return u, store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ----- tests -----

func TestDeposit_Success(t *testing.T) {
	u, store := newFixture("100.00")

	dto, err := u.Deposit(context.Background(), entID, dec("50.00"), "top up")
	if err != nil {
		t.Fatalf("Deposit err: %v", err)
	}
	if !dto.BalanceAfter.Equal(dec("150.00")) {
		t.Fatalf("balance_after = %s, want 150.00", dto.BalanceAfter)
	}
	if !store.acct.Balance.Equal(dec("150.00")) {
		t.Fatalf("stored balance = %s, want 150.00", store.acct.Balance)
	}
	if len(store.txs) != 1 {
		t.Fatalf("journal rows = %d, want 1", len(store.txs))
	}
	tr := store.txs[0]
	if tr.TransType != account.TransDeposit || !tr.Amount.Equal(dec("50.00")) || !tr.BalanceAfter.Equal(dec("150.00")) {
		t.Fatalf("unexpected journal row: %+v", tr)
	}
	if tr.TransactionID == "" {
		t.Fatal("journal row missing transaction id")
	}
}

func TestDeposit_InvalidAmount(t *testing.T) {
	u, store := newFixture("100.00")
	for _, amt := range []string{"0", "-1", "-0.01"} {
		_, err := u.Deposit(context.Background(), entID, dec(amt), "")
		if !errors.Is(err, account.ErrInvalidAmount) {
			t.Fatalf("Deposit(%s) err = %v, want ErrInvalidAmount", amt, err)
		}
	}
	if len(store.txs) != 0 {
		t.Fatalf("journal rows = %d, want 0", len(store.txs))
	}
	if !store.acct.Balance.Equal(dec("100.00")) {
		t.Fatalf("balance changed: %s", store.acct.Balance)
	}
}

func TestWithdraw_InsufficientBalanceLeavesAccountUntouched(t *testing.T) {
	u, store := newFixture("150.00")

	dto, balance, err := u.Withdraw(context.Background(), entID, dec("200.00"), "")
	if !errors.Is(err, account.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if dto != nil {
		t.Fatalf("dto = %+v, want nil", dto)
	}
	if !balance.Equal(dec("150.00")) {
		t.Fatalf("diagnostic balance = %s, want 150.00", balance)
	}
	if !store.acct.Balance.Equal(dec("150.00")) {
		t.Fatalf("stored balance = %s, want 150.00", store.acct.Balance)
	}
	if len(store.txs) != 0 {
		t.Fatalf("journal rows = %d, want 0 (failed op must not journal)", len(store.txs))
	}
}

func TestWithdraw_InvalidAmount(t *testing.T) {
	u, _ := newFixture("100.00")
	_, _, err := u.Withdraw(context.Background(), entID, dec("0"), "")
	if !errors.Is(err, account.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}

// The worked scenario: 100.00, +50.00 -> 150.00, -200.00 rejected,
// -150.00 -> 0.00.
func TestLedger_Scenario(t *testing.T) {
	u, store := newFixture("100.00")
	ctx := context.Background()

	if _, err := u.Deposit(ctx, entID, dec("50.00"), ""); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !store.acct.Balance.Equal(dec("150.00")) {
		t.Fatalf("after deposit balance = %s", store.acct.Balance)
	}

	if _, _, err := u.Withdraw(ctx, entID, dec("200.00"), ""); !errors.Is(err, account.ErrInsufficientBalance) {
		t.Fatalf("overdraw err = %v", err)
	}
	if !store.acct.Balance.Equal(dec("150.00")) {
		t.Fatalf("after rejected withdraw balance = %s", store.acct.Balance)
	}

	dto, balance, err := u.Withdraw(ctx, entID, dec("150.00"), "")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !dto.BalanceAfter.Equal(dec("0")) || !balance.Equal(dec("0")) {
		t.Fatalf("final balance = %s / %s, want 0", dto.BalanceAfter, balance)
	}
}

// Balance consistency: initial balance plus signed successful amounts
// equals the final balance, to the cent.
func TestLedger_BalanceConsistency(t *testing.T) {
	u, store := newFixture("250.00")
	ctx := context.Background()

	ops := []struct {
		kind   string
		amount string
	}{
		{"deposit", "10.01"},
		{"withdraw", "0.99"},
		{"deposit", "199.99"},
		{"withdraw", "500.00"}, // rejected
		{"withdraw", "458.99"},
		{"deposit", "0.03"},
		{"withdraw", "0.06"}, // rejected: balance is 0.05
		{"withdraw", "0.05"},
	}

	expected := dec("250.00")
	for _, op := range ops {
		amt := dec(op.amount)
		if op.kind == "deposit" {
			if _, err := u.Deposit(ctx, entID, amt, ""); err != nil {
				t.Fatalf("deposit %s: %v", op.amount, err)
			}
			expected = expected.Add(amt)
			continue
		}
		_, _, err := u.Withdraw(ctx, entID, amt, "")
		switch {
		case err == nil:
			expected = expected.Sub(amt)
		case errors.Is(err, account.ErrInsufficientBalance):
			// no change
		default:
			t.Fatalf("withdraw %s: %v", op.amount, err)
		}
	}

	if !store.acct.Balance.Equal(expected) {
		t.Fatalf("final balance = %s, want %s", store.acct.Balance, expected)
	}

	// replay the journal independently of the materialized balance
	replay := dec("250.00")
	for _, tr := range store.txs {
		if tr.TransType == account.TransDeposit {
			replay = replay.Add(tr.Amount)
		} else {
			replay = replay.Sub(tr.Amount)
		}
		if replay.IsNegative() {
			t.Fatalf("journal replay went negative: %s", replay)
		}
	}
	if !replay.Equal(store.acct.Balance) {
		t.Fatalf("journal replay = %s, balance = %s", replay, store.acct.Balance)
	}
}

// Serialized concurrent withdrawals must never jointly overdraw.
func TestWithdraw_ConcurrentNoLostUpdate(t *testing.T) {
	u, store := newFixture("100.00")

	const workers = 10
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := u.Withdraw(context.Background(), entID, dec("30.00"), ""); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	n := 0
	for range successes {
		n++
	}
	if n != 3 {
		t.Fatalf("successful withdrawals = %d, want 3", n)
	}
	if !store.acct.Balance.Equal(dec("10.00")) {
		t.Fatalf("final balance = %s, want 10.00", store.acct.Balance)
	}
	if store.acct.Balance.IsNegative() {
		t.Fatalf("balance went negative: %s", store.acct.Balance)
	}
}

func TestWithdraw_AccountNotFound(t *testing.T) {
	store := &memAccounts{acct: &account.Account{}}
	u := NewUsecase(&mockEnterprises{}, store, &fakeUoW{store: store, getErr: gorm.ErrRecordNotFound})

	_, _, err := u.Withdraw(context.Background(), entID, dec("1.00"), "")
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeposit_EnterpriseNotFound(t *testing.T) {
	store := &memAccounts{acct: &account.Account{}}
	u := NewUsecase(&mockEnterprises{
		GetByEnterpriseIDFn: func(context.Context, string) (*enterprise.Enterprise, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}, store, &fakeUoW{store: store})

	_, err := u.Deposit(context.Background(), entID, dec("1.00"), "")
	if !errors.Is(err, enterprise.ErrNotFound) {
		t.Fatalf("err = %v, want enterprise.ErrNotFound", err)
	}
}
