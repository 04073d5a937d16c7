package mysql

import (
	"context"

	"bank-credit-portal/internal/domain/account"
	"bank-credit-portal/internal/domain/loan"
	"bank-credit-portal/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Enterprises: &EnterpriseRepository{db: tx},
		Accounts:    &AccountRepository{db: tx},
		Loans:       &LoanRepository{db: tx},
		Assessments: &AssessmentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// WithinAccountTx locks the enterprise's account row up-front so the
// read-check-write of a deposit or withdrawal is one atomic unit.
func (u *GormUoW) WithinAccountTx(ctx context.Context, enterpriseNumericID uint64, fn func(r uow.Repos, a *account.Account) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		a, err := r.Accounts.GetByEnterpriseIDForUpdate(ctx, enterpriseNumericID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

// WithinLoanTx locks the loan row up-front to prevent races between
// repayments and state transitions.
func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
