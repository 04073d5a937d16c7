package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidTransition = errors.New("invalid loan state transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRepaying  Status = "repaying"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// CanTransition encodes the loan state machine:
// pending -> repaying | rejected, repaying -> completed.
// rejected and completed are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusRepaying || to == StatusRejected
	case StatusRepaying:
		return to == StatusCompleted
	default:
		return false
	}
}

// Loan tracks one credit line. RemainingAmount is monotonically
// non-increasing while the status is repaying, bounded below at zero.
// InterestRate is the configured APR carried for reporting; repayment
// math uses the separate per-payment interest share.
type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	EnterpriseID    uint64          `gorm:"column:enterprise_id;not null;index:idx_loans_enterprise" json:"-"`
	LoanNo          string          `gorm:"column:loan_no;size:16;not null" json:"loan_no"`
	LoanAmount      decimal.Decimal `gorm:"column:loan_amount;type:decimal(18,2);not null" json:"loan_amount"`
	InterestRate    decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,4);not null" json:"interest_rate"`
	LoanTerm        int             `gorm:"column:loan_term;not null" json:"loan_term"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount;type:decimal(18,2);not null" json:"remaining_amount"`
	Status          Status          `gorm:"size:16;not null;default:'pending';index:idx_loans_status" json:"status"`
	ApplyTime       time.Time       `gorm:"column:apply_time" json:"apply_time"`
	ApproveTime     *time.Time      `gorm:"column:approve_time" json:"approve_time,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Repayment is one append-only repayment journal row, with
// principal + interest == repay_amount (after cent rounding).
type Repayment struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID  string          `gorm:"size:36;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID       uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	EnterpriseID uint64          `gorm:"column:enterprise_id;not null;index" json:"-"`
	RepayAmount  decimal.Decimal `gorm:"column:repay_amount;type:decimal(18,2);not null" json:"repay_amount"`
	Principal    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"principal"`
	Interest     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"interest"`
	RepayDate    time.Time       `gorm:"column:repay_date;type:date;not null" json:"repay_date"`
	Status       string          `gorm:"size:16;not null;default:'paid'" json:"status"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }
