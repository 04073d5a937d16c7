package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bank-credit-portal/internal/domain/assessment"
	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/scoring"

	"gorm.io/gorm"
)

// Usecase runs the scoring engine and keeps the append-only assessment
// history. Scoring itself never fails; the only errors here are lookup
// and persistence errors.
type Usecase struct {
	enterprises enterprise.Repository
	assessments assessment.Repository
}

func NewUsecase(ents enterprise.Repository, history assessment.Repository) *Usecase {
	return &Usecase{enterprises: ents, assessments: history}
}

type AssessmentDTO struct {
	Score          int                          `json:"score"`
	Grade          string                       `json:"grade"`
	FactorScores   map[string]int               `json:"factor_scores"`
	RiskIndicators map[string]scoring.RiskLevel `json:"risk_indicators"`
	AssessTime     time.Time                    `json:"assess_time"`
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

// Assess scores the questionnaire and appends one immutable history
// row; earlier assessments are never updated.
func (u *Usecase) Assess(ctx context.Context, enterpriseID string, questionnaire map[string]string) (*AssessmentDTO, error) {
	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}

	res := scoring.Score(questionnaire)
	risks := scoring.RiskIndicators(res.FactorScores, res.Total)

	factorJSON, err := json.Marshal(res.FactorScores)
	if err != nil {
		return nil, err
	}
	riskJSON, err := json.Marshal(risks)
	if err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(questionnaire)
	if err != nil {
		return nil, err
	}

	row := &assessment.Assessment{
		EnterpriseID:      ent.ID,
		Score:             res.Total,
		Grade:             string(res.Grade),
		FactorScores:      factorJSON,
		RiskIndicators:    riskJSON,
		QuestionnaireData: snapshot,
		AssessTime:        time.Now().UTC(),
	}
	if err := u.assessments.Append(ctx, row); err != nil {
		return nil, err
	}

	return &AssessmentDTO{
		Score:          res.Total,
		Grade:          string(res.Grade),
		FactorScores:   res.FactorScores,
		RiskIndicators: risks,
		AssessTime:     row.AssessTime,
	}, nil
}

// Latest returns the newest assessment for the enterprise.
func (u *Usecase) Latest(ctx context.Context, enterpriseID string) (*AssessmentDTO, error) {
	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	row, err := u.assessments.Latest(ctx, ent.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assessment.ErrNotFound
		}
		return nil, err
	}
	return assessmentDTO(row)
}

// History returns up to limit assessments, newest first.
func (u *Usecase) History(ctx context.Context, enterpriseID string, limit int) ([]AssessmentDTO, error) {
	ent, err := u.resolveEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	rows, err := u.assessments.History(ctx, ent.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]AssessmentDTO, 0, len(rows))
	for i := range rows {
		dto, err := assessmentDTO(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func assessmentDTO(row *assessment.Assessment) (*AssessmentDTO, error) {
	dto := &AssessmentDTO{
		Score:      row.Score,
		Grade:      row.Grade,
		AssessTime: row.AssessTime,
	}
	if len(row.FactorScores) > 0 {
		if err := json.Unmarshal(row.FactorScores, &dto.FactorScores); err != nil {
			return nil, err
		}
	}
	if len(row.RiskIndicators) > 0 {
		if err := json.Unmarshal(row.RiskIndicators, &dto.RiskIndicators); err != nil {
			return nil, err
		}
	}
	return dto, nil
}
