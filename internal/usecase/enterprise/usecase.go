package enterprise

import (
	"context"
	"errors"
	"time"

	"bank-credit-portal/internal/domain/account"
	"bank-credit-portal/internal/domain/enterprise"
	"bank-credit-portal/internal/domain/uow"
	"bank-credit-portal/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Usecase handles borrower onboarding. Registration creates the
// enterprise and its single zero-balance account in one transaction, so
// no enterprise is ever observable without an account.
type Usecase struct {
	enterprises enterprise.Repository
	uow         uow.UnitOfWork
}

func NewUsecase(ents enterprise.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{enterprises: ents, uow: tx}
}

type RegisterInput struct {
	CompanyName       string
	CreditCode        string
	LegalPerson       string
	RegisteredCapital string
	Industry          string
	Address           string
}

type EnterpriseDTO struct {
	EnterpriseID string    `json:"enterprise_id"`
	CompanyName  string    `json:"company_name"`
	CreditCode   string    `json:"credit_code,omitempty"`
	LegalPerson  string    `json:"legal_person,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	Address      string    `json:"address,omitempty"`
	AccountNo    string    `json:"account_no,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Register creates the enterprise plus its account atomically. The
// account number derives from the numeric id assigned on insert.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*EnterpriseDTO, error) {
	if in.CompanyName == "" {
		return nil, errors.New("company name is required")
	}
	if in.CreditCode != "" && len(in.CreditCode) != 18 {
		return nil, errors.New("credit code must be 18 characters")
	}

	var dto *EnterpriseDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e := &enterprise.Enterprise{
			EnterpriseID:      id.NewID32(),
			CompanyName:       in.CompanyName,
			CreditCode:        in.CreditCode,
			LegalPerson:       in.LegalPerson,
			RegisteredCapital: in.RegisteredCapital,
			Industry:          in.Industry,
			Address:           in.Address,
		}
		if err := r.Enterprises.Create(ctx, e); err != nil {
			return err
		}
		a := &account.Account{
			EnterpriseID: e.ID,
			AccountNo:    enterprise.AccountNumber(e.ID),
			Balance:      decimal.Zero,
		}
		if err := r.Accounts.Create(ctx, a); err != nil {
			return err
		}
		dto = &EnterpriseDTO{
			EnterpriseID: e.EnterpriseID,
			CompanyName:  e.CompanyName,
			CreditCode:   e.CreditCode,
			LegalPerson:  e.LegalPerson,
			Industry:     e.Industry,
			Address:      e.Address,
			AccountNo:    a.AccountNo,
			CreatedAt:    e.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get reads one enterprise by public id.
func (u *Usecase) Get(ctx context.Context, enterpriseID string) (*EnterpriseDTO, error) {
	e, err := u.enterprises.GetByEnterpriseID(ctx, enterpriseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enterprise.ErrNotFound
		}
		return nil, err
	}
	return &EnterpriseDTO{
		EnterpriseID: e.EnterpriseID,
		CompanyName:  e.CompanyName,
		CreditCode:   e.CreditCode,
		LegalPerson:  e.LegalPerson,
		Industry:     e.Industry,
		Address:      e.Address,
		CreatedAt:    e.CreatedAt,
	}, nil
}
