package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("account not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type TransType string

const (
	TransDeposit  TransType = "deposit"
	TransWithdraw TransType = "withdraw"
)

// Account is the simulated corporate deposit account. One per
// enterprise; balance never observable below zero between operations.
// Mutated only through the ledger usecase inside an account-row
// transaction.
type Account struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	EnterpriseID uint64          `gorm:"column:enterprise_id;not null;uniqueIndex:ux_accounts_enterprise" json:"-"`
	AccountNo    string          `gorm:"size:16;not null;uniqueIndex:ux_accounts_account_no" json:"account_no"`
	Balance      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Transaction is one append-only journal row. The signed sum of amounts
// plus the account's initial balance reproduces the materialized balance
// at every point of the sequence.
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string          `gorm:"size:36;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	AccountID     uint64          `gorm:"column:account_id;not null;index" json:"-"`
	EnterpriseID  uint64          `gorm:"column:enterprise_id;not null;index" json:"-"`
	TransType     TransType       `gorm:"column:trans_type;size:16;not null" json:"trans_type"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	BalanceAfter  decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balance_after"`
	Remark        string          `gorm:"size:255" json:"remark"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
