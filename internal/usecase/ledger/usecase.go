package ledger

import (
	"context"
	"errors"
	"time"

	"bank-credit-portal/internal/domain/account"
	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/domain/uow"
	"bank-credit-portal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Usecase owns the deposit/withdraw transaction boundary. Every balance
// mutation runs inside an account-row lock: the sufficiency check, the
// new balance and the journal row commit or roll back together, so two
// concurrent withdrawals can never both pass the check against a stale
// balance.
type Usecase struct {
	enterprises enterprise.Repository
	accounts    account.Repository
	uow         uow.UnitOfWork
}

func NewUsecase(enterprises enterprise.Repository, accounts account.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{enterprises: enterprises, accounts: accounts, uow: tx}
}

type TransactionDTO struct {
	TransactionID string          `json:"transaction_id"`
	TransType     string          `json:"trans_type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type AccountDTO struct {
	AccountNo string          `json:"account_no"`
	Balance   decimal.Decimal `json:"balance"`
}

func (u *Usecase) resolveEnterprise(ctx context.Context, enterpriseID string) (*enterprise.Enterprise, error) {
	ent, err := u.enterprises.GetByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enterprise.ErrNotFound
		}
		return nil, err
	}
	return ent, nil
}

// Deposit adds amount to the enterprise's account balance and journals
// the movement. Fails with account.ErrInvalidAmount when amount <= 0.
func (u *Usecase) Deposit(ctx context.Context, enterpriseID string, amount decimal.Decimal, remark string) (*TransactionDTO, error) {
	if !amount.IsPositive() {
		return nil, account.ErrInvalidAmount
	}
	amount = money.Round2(amount)

	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}

	var dto *TransactionDTO
	err = u.uow.WithinAccountTx(ctx, ent.ID, func(r uow.Repos, a *account.Account) error {
		newBalance := money.Round2(a.Balance.Add(amount))
		a.Balance = newBalance
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		tr := &account.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     a.ID,
			EnterpriseID:  a.EnterpriseID,
			TransType:     account.TransDeposit,
			Amount:        amount,
			BalanceAfter:  newBalance,
			Remark:        remark,
			CreatedAt:     time.Now().UTC(),
		}
		if err := r.Accounts.AppendTransaction(ctx, tr); err != nil {
			return err
		}
		dto = transactionDTO(tr)
		return nil
	})
	if err != nil {
		return nil, translateAccountErr(err)
	}
	return dto, nil
}

// Withdraw subtracts amount from the balance. On
// account.ErrInsufficientBalance the account is untouched and the
// returned balance is the current one, for diagnostics. Fails with
// account.ErrInvalidAmount when amount <= 0.
func (u *Usecase) Withdraw(ctx context.Context, enterpriseID string, amount decimal.Decimal, remark string) (*TransactionDTO, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return nil, decimal.Zero, account.ErrInvalidAmount
	}
	amount = money.Round2(amount)

	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	var (
		dto     *TransactionDTO
		balance decimal.Decimal
	)
	err = u.uow.WithinAccountTx(ctx, ent.ID, func(r uow.Repos, a *account.Account) error {
		balance = a.Balance
		if amount.GreaterThan(a.Balance) {
			return account.ErrInsufficientBalance
		}
		newBalance := money.Round2(a.Balance.Sub(amount))
		a.Balance = newBalance
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}
		tr := &account.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     a.ID,
			EnterpriseID:  a.EnterpriseID,
			TransType:     account.TransWithdraw,
			Amount:        amount,
			BalanceAfter:  newBalance,
			Remark:        remark,
			CreatedAt:     time.Now().UTC(),
		}
		if err := r.Accounts.AppendTransaction(ctx, tr); err != nil {
			return err
		}
		balance = newBalance
		dto = transactionDTO(tr)
		return nil
	})
	if err != nil {
		return nil, balance, translateAccountErr(err)
	}
	return dto, balance, nil
}

// GetAccount reads the current materialized balance.
func (u *Usecase) GetAccount(ctx context.Context, enterpriseID string) (*AccountDTO, error) {
	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	a, err := u.accounts.GetByEnterpriseID(ctx, ent.ID)
	if err != nil {
		return nil, translateAccountErr(err)
	}
	return &AccountDTO{AccountNo: a.AccountNo, Balance: a.Balance}, nil
}

// ListTransactions returns the most recent journal rows, newest first.
func (u *Usecase) ListTransactions(ctx context.Context, enterpriseID string, limit int) ([]TransactionDTO, error) {
	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	rows, err := u.accounts.ListTransactions(ctx, ent.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *transactionDTO(&rows[i]))
	}
	return out, nil
}

func transactionDTO(tr *account.Transaction) *TransactionDTO {
	return &TransactionDTO{
		TransactionID: tr.TransactionID,
		TransType:     string(tr.TransType),
		Amount:        tr.Amount,
		BalanceAfter:  tr.BalanceAfter,
		Remark:        tr.Remark,
		CreatedAt:     tr.CreatedAt,
	}
}

func translateAccountErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account.ErrNotFound
	}
	return err
}
