package reporting

import (
	"context"

	"bank-credit-portal/internal/domain/assessment"
	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Usecase aggregates the portfolio counters shown on the bank-side
// dashboard. Read-only.
type Usecase struct {
	enterprises enterprise.Repository
	loans       loan.Repository
	assessments assessment.Repository
}

func NewUsecase(ents enterprise.Repository, loans loan.Repository, history assessment.Repository) *Usecase {
	return &Usecase{enterprises: ents, loans: loans, assessments: history}
}

type OverviewDTO struct {
	EnterpriseCount   int64            `json:"enterprise_count"`
	PendingLoans      int64            `json:"pending_loans"`
	ActiveLoans       int64            `json:"active_loans"`
	TotalLent         decimal.Decimal  `json:"total_lent"`
	OutstandingDebt   decimal.Decimal  `json:"outstanding_debt"`
	GradeDistribution map[string]int64 `json:"grade_distribution"`
}

func (u *Usecase) Overview(ctx context.Context) (*OverviewDTO, error) {
	entCount, err := u.enterprises.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := u.loans.CountByStatus(ctx, loan.StatusPending)
	if err != nil {
		return nil, err
	}
	active, err := u.loans.CountByStatus(ctx, loan.StatusRepaying)
	if err != nil {
		return nil, err
	}
	totalLent, err := u.loans.SumLoanAmount(ctx, []loan.Status{loan.StatusRepaying, loan.StatusCompleted})
	if err != nil {
		return nil, err
	}
	debt, err := u.loans.SumRemainingAmount(ctx, loan.StatusRepaying)
	if err != nil {
		return nil, err
	}
	grades, err := u.assessments.GradeDistribution(ctx)
	if err != nil {
		return nil, err
	}
	return &OverviewDTO{
		EnterpriseCount:   entCount,
		PendingLoans:      pending,
		ActiveLoans:       active,
		TotalLent:         totalLent,
		OutstandingDebt:   debt,
		GradeDistribution: grades,
	}, nil
}
