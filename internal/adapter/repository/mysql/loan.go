package mysql

import (
	"context"

	loanDomain "bank-credit-portal/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock so concurrent repayments and
// state transitions on the same loan serialize. Must run inside a
// transaction to have any effect.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByEnterpriseID(ctx context.Context, enterpriseNumericID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("enterprise_id = ?", enterpriseNumericID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) AppendRepayment(ctx context.Context, rp *loanDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *LoanRepository) ListRepayments(ctx context.Context, enterpriseNumericID uint64, limit int) ([]loanDomain.Repayment, error) {
	var out []loanDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("enterprise_id = ?", enterpriseNumericID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context, st loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("status = ?", st).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) SumLoanAmount(ctx context.Context, statuses []loanDomain.Status) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("SUM(loan_amount)").
		Where("status IN ?", statuses).
		Scan(&raw)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

func (r *LoanRepository) SumRemainingAmount(ctx context.Context, st loanDomain.Status) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("SUM(remaining_amount)").
		Where("status = ?", st).
		Scan(&raw)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}
