package assessment

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var ErrNotFound = errors.New("assessment not found")

// Assessment is one row of the append-only credit assessment history.
// Rows are inserted, never updated; "latest" is the newest row for the
// enterprise. FactorScores, RiskIndicators and QuestionnaireData are
// JSON snapshots so a stored assessment replays without the engine.
type Assessment struct {
	ID                uint64         `gorm:"primaryKey;column:id" json:"-"`
	EnterpriseID      uint64         `gorm:"column:enterprise_id;not null;index:idx_assessments_enterprise" json:"-"`
	Score             int            `gorm:"not null" json:"score"`
	Grade             string         `gorm:"size:1;not null" json:"grade"`
	FactorScores      datatypes.JSON `gorm:"column:factor_scores" json:"factor_scores"`
	RiskIndicators    datatypes.JSON `gorm:"column:risk_indicators" json:"risk_indicators"`
	QuestionnaireData datatypes.JSON `gorm:"column:questionnaire_data" json:"questionnaire_data"`
	AssessTime        time.Time      `gorm:"column:assess_time;not null;index:idx_assessments_time" json:"assess_time"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Assessment) TableName() string { return "credit_assessments" }
