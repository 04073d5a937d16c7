package lending

import (
	"context"
	"errors"
	"time"

	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/domain/loan"
	"bank-credit-portal/internal/domain/uow"
	"bank-credit-portal/pkg/id"
	"bank-credit-portal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Usecase implements the loan lifecycle:
// pending -> repaying | rejected, repaying -> completed.
// Repayment splits every payment into a fixed interest share and a
// principal remainder; interest does not depend on time or outstanding
// balance. That policy is the contract here, not an approximation of
// amortization.
type Usecase struct {
	enterprises enterprises
	loans       loan.Repository
	uow         uow.UnitOfWork

	// configured constants
	annualRate  decimal.Decimal // stored APR, reporting only
	interestCut decimal.Decimal // share of each payment taken as interest
}

type enterprises interface {
	GetByEnterpriseID(ctx context.Context, enterpriseID string) (*enterprise.Enterprise, error)
}

func NewUsecase(ents enterprises, loans loan.Repository, tx uow.UnitOfWork, annualRate, interestCut decimal.Decimal) *Usecase {
	return &Usecase{enterprises: ents, loans: loans, uow: tx, annualRate: annualRate, interestCut: interestCut}
}

type ApplyInput struct {
	Amount     decimal.Decimal
	TermMonths int
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	LoanNo          string          `json:"loan_no"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	LoanTerm        int             `json:"loan_term"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	ApplyTime       time.Time       `json:"apply_time"`
}

// RepaymentListItemDTO is the journal-listing shape. Unlike
// RepaymentDTO it carries no loan snapshot: remaining amount and status
// belong to the loan at repay time and are not stored per row.
type RepaymentListItemDTO struct {
	RepaymentID string          `json:"repayment_id"`
	RepayAmount decimal.Decimal `json:"repay_amount"`
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	RepayDate   time.Time       `json:"repay_date"`
}

type RepaymentDTO struct {
	RepaymentID     string          `json:"repayment_id"`
	LoanID          string          `json:"loan_id"`
	RepayAmount     decimal.Decimal `json:"repay_amount"`
	Principal       decimal.Decimal `json:"principal"`
	Interest        decimal.Decimal `json:"interest"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	LoanStatus      string          `json:"loan_status"`
	RepayDate       time.Time       `json:"repay_date"`
}

// Apply opens a pending loan with remaining principal equal to the
// requested amount. Fails with loan.ErrInvalidAmount when amount <= 0.
func (u *Usecase) Apply(ctx context.Context, enterpriseID string, in ApplyInput) (*LoanDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, loan.ErrInvalidAmount
	}
	ent, err := u.enterprises.GetByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enterprise.ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	amount := money.Round2(in.Amount)
	l := &loan.Loan{
		LoanID:          id.NewID32(),
		EnterpriseID:    ent.ID,
		LoanNo:          "LN" + now.Format("20060102150405"),
		LoanAmount:      amount,
		InterestRate:    u.annualRate,
		LoanTerm:        in.TermMonths,
		RemainingAmount: amount,
		Status:          loan.StatusPending,
		ApplyTime:       now,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return loanDTO(l), nil
}

// Approve moves a pending loan to repaying.
func (u *Usecase) Approve(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, loan.StatusRepaying)
}

// Reject moves a pending loan to rejected.
func (u *Usecase) Reject(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, loan.StatusRejected)
}

func (u *Usecase) transition(ctx context.Context, loanID string, to loan.Status) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !loan.CanTransition(l.Status, to) {
			return loan.ErrInvalidTransition
		}
		l.Status = to
		now := time.Now().UTC()
		l.ApproveTime = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = loanDTO(l)
		return nil
	})
	if err != nil {
		return nil, translateLoanErr(err)
	}
	return dto, nil
}

// Repay applies a payment to a repaying loan. The interest component is
// a fixed share of the payment, rounded half-up to the cent; the rest
// reduces the remaining principal, clamped at zero. Reaching zero
// completes the loan. The loan update and the repayment row commit
// atomically under the loan-row lock.
func (u *Usecase) Repay(ctx context.Context, loanID string, amount decimal.Decimal) (*RepaymentDTO, error) {
	if !amount.IsPositive() {
		return nil, loan.ErrInvalidAmount
	}
	amount = money.Round2(amount)

	var dto *RepaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusRepaying {
			return loan.ErrInvalidTransition
		}

		interest := money.Round2(amount.Mul(u.interestCut))
		principal := amount.Sub(interest)

		remaining := l.RemainingAmount.Sub(principal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		l.RemainingAmount = remaining
		if remaining.IsZero() {
			l.Status = loan.StatusCompleted
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		now := time.Now().UTC()
		rp := &loan.Repayment{
			RepaymentID:  uuid.NewString(),
			LoanID:       l.ID,
			EnterpriseID: l.EnterpriseID,
			RepayAmount:  amount,
			Principal:    principal,
			Interest:     interest,
			RepayDate:    now,
			Status:       "paid",
			CreatedAt:    now,
		}
		if err := r.Loans.AppendRepayment(ctx, rp); err != nil {
			return err
		}

		dto = &RepaymentDTO{
			RepaymentID:     rp.RepaymentID,
			LoanID:          l.LoanID,
			RepayAmount:     amount,
			Principal:       principal,
			Interest:        interest,
			RemainingAmount: l.RemainingAmount,
			LoanStatus:      string(l.Status),
			RepayDate:       rp.RepayDate,
		}
		return nil
	})
	if err != nil {
		return nil, translateLoanErr(err)
	}
	return dto, nil
}

// Get reads one loan by public id.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, translateLoanErr(err)
	}
	return loanDTO(l), nil
}

// List returns an enterprise's loans, newest first.
func (u *Usecase) List(ctx context.Context, enterpriseID string) ([]LoanDTO, error) {
	ent, err := u.enterprises.GetByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enterprise.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.loans.ListByEnterpriseID(ctx, ent.ID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *loanDTO(&rows[i]))
	}
	return out, nil
}

// ListRepayments returns an enterprise's repayment journal, newest
// first, capped at limit.
func (u *Usecase) ListRepayments(ctx context.Context, enterpriseID string, limit int) ([]RepaymentListItemDTO, error) {
	ent, err := u.enterprises.GetByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enterprise.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.loans.ListRepayments(ctx, ent.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentListItemDTO, 0, len(rows))
	for _, rp := range rows {
		out = append(out, RepaymentListItemDTO{
			RepaymentID: rp.RepaymentID,
			RepayAmount: rp.RepayAmount,
			Principal:   rp.Principal,
			Interest:    rp.Interest,
			RepayDate:   rp.RepayDate,
		})
	}
	return out, nil
}

func loanDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		LoanNo:          l.LoanNo,
		LoanAmount:      l.LoanAmount,
		InterestRate:    l.InterestRate,
		LoanTerm:        l.LoanTerm,
		RemainingAmount: l.RemainingAmount,
		Status:          string(l.Status),
		ApplyTime:       l.ApplyTime,
	}
}

func translateLoanErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
