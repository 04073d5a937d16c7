package mysql

import (
	"testing"

	accountDomain "bank-credit-portal/internal/domain/account"
	assessmentDomain "bank-credit-portal/internal/domain/assessment"
	enterpriseDomain "bank-credit-portal/internal/domain/enterprise"
	loanDomain "bank-credit-portal/internal/domain/loan"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema. The
// domain models carry no MySQL-only column types, so they migrate as-is;
// the sqlite driver drops FOR UPDATE clauses, which lets the locking
// read paths run unchanged.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&enterpriseDomain.Enterprise{},
		&accountDomain.Account{},
		&accountDomain.Transaction{},
		&loanDomain.Loan{},
		&loanDomain.Repayment{},
		&assessmentDomain.Assessment{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
