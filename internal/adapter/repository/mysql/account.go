package mysql

import (
	"context"

	accountDomain "bank-credit-portal/internal/domain/account"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) GetByEnterpriseID(ctx context.Context, enterpriseNumericID uint64) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("enterprise_id = ?", enterpriseNumericID).First(&out)
	return &out, res.Error
}

// GetByEnterpriseIDForUpdate takes a row lock so concurrent deposit and
// withdraw calls on the same account serialize. Must run inside a
// transaction to have any effect.
func (r *AccountRepository) GetByEnterpriseIDForUpdate(ctx context.Context, enterpriseNumericID uint64) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("enterprise_id = ?", enterpriseNumericID).
		First(&out)
	return &out, res.Error
}

func (r *AccountRepository) AppendTransaction(ctx context.Context, tr *accountDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(tr).Error
}

func (r *AccountRepository) ListTransactions(ctx context.Context, enterpriseNumericID uint64, limit int) ([]accountDomain.Transaction, error) {
	var out []accountDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("enterprise_id = ?", enterpriseNumericID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
