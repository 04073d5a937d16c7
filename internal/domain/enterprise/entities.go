package enterprise

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("enterprise not found")

// Enterprise is the borrower identity. It owns exactly one ledger
// account (created at registration) and any number of loans and credit
// assessments. Never hard-deleted during normal operation.
type Enterprise struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"-"`
	EnterpriseID      string    `gorm:"size:32;uniqueIndex:ux_enterprises_enterprise_id" json:"enterprise_id"`
	CompanyName       string    `gorm:"size:255;not null" json:"company_name"`
	CreditCode        string    `gorm:"size:18" json:"credit_code"`
	LegalPerson       string    `gorm:"size:64" json:"legal_person"`
	RegisteredCapital string    `gorm:"size:32" json:"registered_capital"`
	Industry          string    `gorm:"size:32" json:"industry"`
	Address           string    `gorm:"size:255" json:"address"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Enterprise) TableName() string { return "enterprises" }

// AccountNumber derives the single account's number from the numeric
// enterprise id: "6222" followed by the id zero-padded to 12 digits.
func AccountNumber(enterpriseNumericID uint64) string {
	return fmt.Sprintf("6222%012d", enterpriseNumericID)
}
