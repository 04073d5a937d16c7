package uow

import (
	"context"

	"bank-credit-portal/internal/domain/account"
	"bank-credit-portal/internal/domain/assessment"
	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/domain/loan"
)

// Repos is the full repository set bound to one transaction.
type Repos struct {
	Enterprises enterprise.Repository
	Accounts    account.Repository
	Loans       loan.Repository
	Assessments assessment.Repository
}

// UnitOfWork owns the atomic transaction boundary for every mutation.
// Callers never read-then-write across separate statements: the
// convenience methods lock the single affected row up-front so two
// concurrent operations on the same account or loan serialize.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the enterprise's account row first, then pass it in
	WithinAccountTx(ctx context.Context, enterpriseNumericID uint64, fn func(r Repos, a *account.Account) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
