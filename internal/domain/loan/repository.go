package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction. Only meaningful inside a UoW tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListByEnterpriseID(ctx context.Context, enterpriseNumericID uint64) ([]Loan, error)

	AppendRepayment(ctx context.Context, r *Repayment) error
	ListRepayments(ctx context.Context, enterpriseNumericID uint64, limit int) ([]Repayment, error)

	CountByStatus(ctx context.Context, st Status) (int64, error)
	SumLoanAmount(ctx context.Context, statuses []Status) (decimal.Decimal, error)
	SumRemainingAmount(ctx context.Context, st Status) (decimal.Decimal, error)
}
