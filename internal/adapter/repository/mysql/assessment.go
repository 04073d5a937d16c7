package mysql

import (
	"context"

	assessmentDomain "bank-credit-portal/internal/domain/assessment"

	"gorm.io/gorm"
)

type AssessmentRepository struct{ db *gorm.DB }

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Append inserts one history row. The repository exposes no update or
// delete; history rows are immutable once written.
func (r *AssessmentRepository) Append(ctx context.Context, a *assessmentDomain.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) Latest(ctx context.Context, enterpriseNumericID uint64) (*assessmentDomain.Assessment, error) {
	var out assessmentDomain.Assessment
	res := r.db.WithContext(ctx).
		Where("enterprise_id = ?", enterpriseNumericID).
		Order("assess_time DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *AssessmentRepository) History(ctx context.Context, enterpriseNumericID uint64, limit int) ([]assessmentDomain.Assessment, error) {
	var out []assessmentDomain.Assessment
	res := r.db.WithContext(ctx).
		Where("enterprise_id = ?", enterpriseNumericID).
		Order("assess_time DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

// GradeDistribution counts enterprises by their most recent grade.
func (r *AssessmentRepository) GradeDistribution(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Grade string
		Cnt   int64
	}
	var rows []row
	res := r.db.WithContext(ctx).
		Model(&assessmentDomain.Assessment{}).
		Select("grade, COUNT(*) as cnt").
		Where("id IN (?)", r.db.Model(&assessmentDomain.Assessment{}).
			Select("MAX(id)").
			Group("enterprise_id")).
		Group("grade").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Grade] = rw.Cnt
	}
	return out, nil
}
