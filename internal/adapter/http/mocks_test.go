package http

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	accountDomain "bank-credit-portal/internal/domain/account"
	assessmentDomain "bank-credit-portal/internal/domain/assessment"
	enterpriseDomain "bank-credit-portal/internal/domain/enterprise"
	loanDomain "bank-credit-portal/internal/domain/loan"
	"bank-credit-portal/internal/domain/uow"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory doubles wired under real usecases, so handler tests run the
// whole request path minus the database.

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type fakeEnterprises struct {
	nextID uint64
	rows   map[string]*enterpriseDomain.Enterprise
}

func newFakeEnterprises() *fakeEnterprises {
	return &fakeEnterprises{rows: map[string]*enterpriseDomain.Enterprise{}}
}

func (f *fakeEnterprises) Create(ctx context.Context, e *enterpriseDomain.Enterprise) error {
	f.nextID++
	e.ID = f.nextID
	cp := *e
	f.rows[e.EnterpriseID] = &cp
	return nil
}
func (f *fakeEnterprises) Save(ctx context.Context, e *enterpriseDomain.Enterprise) error {
	cp := *e
	f.rows[e.EnterpriseID] = &cp
	return nil
}
func (f *fakeEnterprises) GetByEnterpriseID(ctx context.Context, id string) (*enterpriseDomain.Enterprise, error) {
	if e, ok := f.rows[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEnterprises) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

type fakeAccounts struct {
	rows    map[uint64]*accountDomain.Account
	journal []accountDomain.Transaction
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{rows: map[uint64]*accountDomain.Account{}}
}

func (f *fakeAccounts) Create(ctx context.Context, a *accountDomain.Account) error {
	a.ID = uint64(len(f.rows) + 1)
	cp := *a
	f.rows[a.EnterpriseID] = &cp
	return nil
}
func (f *fakeAccounts) Save(ctx context.Context, a *accountDomain.Account) error {
	cp := *a
	f.rows[a.EnterpriseID] = &cp
	return nil
}
func (f *fakeAccounts) GetByEnterpriseID(ctx context.Context, id uint64) (*accountDomain.Account, error) {
	if a, ok := f.rows[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAccounts) GetByEnterpriseIDForUpdate(ctx context.Context, id uint64) (*accountDomain.Account, error) {
	return f.GetByEnterpriseID(ctx, id)
}
func (f *fakeAccounts) AppendTransaction(ctx context.Context, tr *accountDomain.Transaction) error {
	f.journal = append(f.journal, *tr)
	return nil
}
func (f *fakeAccounts) ListTransactions(ctx context.Context, id uint64, limit int) ([]accountDomain.Transaction, error) {
	var out []accountDomain.Transaction
	for i := len(f.journal) - 1; i >= 0 && len(out) < limit; i-- {
		if f.journal[i].EnterpriseID == id {
			out = append(out, f.journal[i])
		}
	}
	return out, nil
}

type fakeLoans struct {
	rows       map[string]*loanDomain.Loan
	repayments []loanDomain.Repayment
}

func newFakeLoans() *fakeLoans { return &fakeLoans{rows: map[string]*loanDomain.Loan{}} }

func (f *fakeLoans) Create(ctx context.Context, l *loanDomain.Loan) error {
	l.ID = uint64(len(f.rows) + 1)
	cp := *l
	f.rows[l.LoanID] = &cp
	return nil
}
func (f *fakeLoans) Save(ctx context.Context, l *loanDomain.Loan) error {
	cp := *l
	f.rows[l.LoanID] = &cp
	return nil
}
func (f *fakeLoans) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	if l, ok := f.rows[loanID]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLoans) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return f.GetByLoanID(ctx, loanID)
}
func (f *fakeLoans) ListByEnterpriseID(ctx context.Context, id uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	for _, l := range f.rows {
		if l.EnterpriseID == id {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
func (f *fakeLoans) AppendRepayment(ctx context.Context, r *loanDomain.Repayment) error {
	f.repayments = append(f.repayments, *r)
	return nil
}
func (f *fakeLoans) ListRepayments(ctx context.Context, id uint64, limit int) ([]loanDomain.Repayment, error) {
	var out []loanDomain.Repayment
	for i := len(f.repayments) - 1; i >= 0 && len(out) < limit; i-- {
		if f.repayments[i].EnterpriseID == id {
			out = append(out, f.repayments[i])
		}
	}
	return out, nil
}
func (f *fakeLoans) CountByStatus(ctx context.Context, st loanDomain.Status) (int64, error) {
	var n int64
	for _, l := range f.rows {
		if l.Status == st {
			n++
		}
	}
	return n, nil
}
func (f *fakeLoans) SumLoanAmount(ctx context.Context, statuses []loanDomain.Status) (total decimal.Decimal, _ error) {
	for _, l := range f.rows {
		for _, st := range statuses {
			if l.Status == st {
				total = total.Add(l.LoanAmount)
			}
		}
	}
	return total, nil
}
func (f *fakeLoans) SumRemainingAmount(ctx context.Context, st loanDomain.Status) (total decimal.Decimal, _ error) {
	for _, l := range f.rows {
		if l.Status == st {
			total = total.Add(l.RemainingAmount)
		}
	}
	return total, nil
}

type fakeAssessments struct {
	rows []assessmentDomain.Assessment
}

func (f *fakeAssessments) Append(ctx context.Context, a *assessmentDomain.Assessment) error {
	a.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, *a)
	return nil
}
func (f *fakeAssessments) Latest(ctx context.Context, id uint64) (*assessmentDomain.Assessment, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].EnterpriseID == id {
			cp := f.rows[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAssessments) History(ctx context.Context, id uint64, limit int) ([]assessmentDomain.Assessment, error) {
	var out []assessmentDomain.Assessment
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].EnterpriseID == id {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}
func (f *fakeAssessments) GradeDistribution(ctx context.Context) (map[string]int64, error) {
	latest := map[uint64]string{}
	for _, a := range f.rows {
		latest[a.EnterpriseID] = a.Grade
	}
	out := map[string]int64{}
	for _, g := range latest {
		out[g]++
	}
	return out, nil
}

type fakeUoW struct {
	ents    *fakeEnterprises
	accts   *fakeAccounts
	loans   *fakeLoans
	history *fakeAssessments
}

func (f *fakeUoW) repos() uow.Repos {
	return uow.Repos{Enterprises: f.ents, Accounts: f.accts, Loans: f.loans, Assessments: f.history}
}

func (f *fakeUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(f.repos())
}
func (f *fakeUoW) WithinAccountTx(ctx context.Context, id uint64, fn func(r uow.Repos, a *accountDomain.Account) error) error {
	a, err := f.accts.GetByEnterpriseIDForUpdate(ctx, id)
	if err != nil {
		return err
	}
	return fn(f.repos(), a)
}
func (f *fakeUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
	l, err := f.loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(f.repos(), l)
}
