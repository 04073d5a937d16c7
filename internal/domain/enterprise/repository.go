package enterprise

import "context"

type Repository interface {
	Create(ctx context.Context, e *Enterprise) error
	GetByEnterpriseID(ctx context.Context, enterpriseID string) (*Enterprise, error)
	Save(ctx context.Context, e *Enterprise) error
	Count(ctx context.Context) (int64, error)
}
