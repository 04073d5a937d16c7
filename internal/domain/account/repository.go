package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByEnterpriseID(ctx context.Context, enterpriseNumericID uint64) (*Account, error)
	// GetByEnterpriseIDForUpdate locks the account row for the duration
	// of the surrounding transaction. Only meaningful inside a UoW tx.
	GetByEnterpriseIDForUpdate(ctx context.Context, enterpriseNumericID uint64) (*Account, error)
	Save(ctx context.Context, a *Account) error

	AppendTransaction(ctx context.Context, tr *Transaction) error
	ListTransactions(ctx context.Context, enterpriseNumericID uint64, limit int) ([]Transaction, error)
}
