package mysql

import (
	"context"

	enterpriseDomain "bank-credit-portal/internal/domain/enterprise"

	"gorm.io/gorm"
)

type EnterpriseRepository struct{ db *gorm.DB }

func NewEnterpriseRepository(db *gorm.DB) *EnterpriseRepository { return &EnterpriseRepository{db: db} }

func (r *EnterpriseRepository) Create(ctx context.Context, e *enterpriseDomain.Enterprise) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnterpriseRepository) Save(ctx context.Context, e *enterpriseDomain.Enterprise) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EnterpriseRepository) GetByEnterpriseID(ctx context.Context, enterpriseID string) (*enterpriseDomain.Enterprise, error) {
	var out enterpriseDomain.Enterprise
	res := r.db.WithContext(ctx).Where("enterprise_id = ?", enterpriseID).First(&out)
	return &out, res.Error
}

func (r *EnterpriseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&enterpriseDomain.Enterprise{}).Count(&n)
	return n, res.Error
}
